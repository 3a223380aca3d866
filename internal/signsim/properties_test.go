package signsim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/signsim/internal/signsim"
)

var _ = Describe("Simulate", func() {
	Context("with zero steps", func() {
		It("returns the initial state at rest", func() {
			traj, err := signsim.Simulate([]int{3, -4, 0}, 0)
			Expect(err).NotTo(HaveOccurred())

			Expect(traj.Positions()).To(Equal([][]int{{3, -4, 0}}))
			Expect(traj.Velocities()).To(Equal([][]int{{0, 0, 0}}))
			Expect(traj.PotentialEnergies()).To(Equal([]int{7}))
			Expect(traj.KineticEnergies()).To(Equal([]int{0}))
		})
	})

	Context("with a single body", func() {
		It("never moves", func() {
			traj, err := signsim.Simulate([]int{-6}, 20)
			Expect(err).NotTo(HaveOccurred())

			for step := 0; step <= 20; step++ {
				x := traj.At(step)
				Expect(x.Position(0)).To(Equal(-6))
				Expect(x.Velocity(0)).To(Equal(0))
			}
			Expect(traj.PotentialEnergies()).To(HaveEach(6))
			Expect(traj.KineticEnergies()).To(HaveEach(0))
		})
	})

	Context("with two bodies", func() {
		var traj *signsim.Trajectory

		BeforeEach(func() {
			var err error
			traj, err = signsim.Simulate([]int{-1, 1}, 3)
			Expect(err).NotTo(HaveOccurred())
		})

		It("pulls them together, through each other and back to rest", func() {
			Expect(traj.Positions()).To(Equal([][]int{{-1, 1}, {0, 0}, {1, -1}, {1, -1}}))
			Expect(traj.Velocities()).To(Equal([][]int{{0, 0}, {1, -1}, {1, -1}, {0, 0}}))
		})

		It("mirrors the two bodies", func() {
			for step := 0; step < traj.Len(); step++ {
				x := traj.At(step)
				Expect(x.Position(0)).To(Equal(-x.Position(1)))
				Expect(x.Velocity(0)).To(Equal(-x.Velocity(1)))
			}
		})
	})

	DescribeTable("keeps momentum at zero",
		func(initial []int, steps int) {
			traj, err := signsim.Simulate(initial, steps)
			Expect(err).NotTo(HaveOccurred())
			for step := 0; step < traj.Len(); step++ {
				Expect(traj.At(step).Momentum()).To(BeZero(), "step %d", step)
			}
		},
		Entry("pair", []int{-1, 1}, 10),
		Entry("four bodies", []int{-1, 2, 4, 3}, 50),
		Entry("coincident bodies", []int{0, 0, 3}, 30),
		Entry("spread", []int{-8, -3, 0, 4, 9}, 40),
	)

	DescribeTable("follows the step rule from the previous snapshot",
		func(initial []int, steps int) {
			traj, err := signsim.Simulate(initial, steps)
			Expect(err).NotTo(HaveOccurred())

			for step := 1; step < traj.Len(); step++ {
				prev, cur := traj.At(step-1), traj.At(step)
				for i := 0; i < prev.Bodies(); i++ {
					dv := 0
					for j := 0; j < prev.Bodies(); j++ {
						switch {
						case prev.Position(j) > prev.Position(i):
							dv++
						case prev.Position(j) < prev.Position(i):
							dv--
						}
					}
					Expect(cur.Velocity(i)).To(Equal(prev.Velocity(i) + dv))
					Expect(cur.Position(i)).To(Equal(prev.Position(i) + cur.Velocity(i)))
				}
			}
		},
		Entry("four bodies", []int{-1, 2, 4, 3}, 30),
		Entry("duplicates", []int{2, 2, 2, -2}, 15),
	)

	It("is deterministic", func() {
		a, err := signsim.Simulate([]int{-7, 3, 11, 0}, 25)
		Expect(err).NotTo(HaveOccurred())
		b, err := signsim.Simulate([]int{-7, 3, 11, 0}, 25)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Positions()).To(Equal(b.Positions()))
		Expect(a.Velocities()).To(Equal(b.Velocities()))
	})
})

var _ = Describe("Simulator", func() {
	It("agrees with Simulate when parallel", func() {
		initial := []int{9, -2, 14, 0, -11, 5, 5, 3}
		serial, err := signsim.Simulate(initial, 40)
		Expect(err).NotTo(HaveOccurred())

		sim := signsim.New(signsim.WithWorkers(3), signsim.WithMinChunk(1))
		parallel, err := sim.Run(context.Background(), initial, 40)
		Expect(err).NotTo(HaveOccurred())

		Expect(parallel.Positions()).To(Equal(serial.Positions()))
		Expect(parallel.Velocities()).To(Equal(serial.Velocities()))
	})

	It("returns to the start after one cycle", func() {
		initial := []int{-1, 2, 4, 3}
		period, err := signsim.CycleLength(context.Background(), initial, 0)
		Expect(err).NotTo(HaveOccurred())

		traj, err := signsim.Simulate(initial, period)
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Final().Equal(traj.Initial())).To(BeTrue())
	})
})
