package signsim_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/signsim/internal/signsim"
)

var _ = Describe("SimulateArgs", func() {
	It("accepts decoded YAML and JSON values", func() {
		traj, err := signsim.SimulateArgs([]any{-1, 1.0}, float64(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Final().Positions()).To(Equal([]int{1, -1}))
	})

	It("accepts typed slices and arrays", func() {
		traj, err := signsim.SimulateArgs([3]int64{1, 2, 3}, uint8(2))
		Expect(err).NotTo(HaveOccurred())
		Expect(traj.Len()).To(Equal(3))
		Expect(traj.Bodies()).To(Equal(3))
	})

	DescribeTable("rejects malformed calls before simulating",
		func(want error, args []any) {
			traj, err := signsim.SimulateArgs(args...)
			Expect(err).To(MatchError(want))
			Expect(traj).To(BeNil())
		},
		Entry("no arguments", signsim.ErrArity, []any{}),
		Entry("one argument", signsim.ErrArity, []any{[]int{1}}),
		Entry("three arguments", signsim.ErrArity, []any{[]int{1}, 2, 3}),
		Entry("two-dimensional positions", signsim.ErrInvalidShape, []any{[][]int{{1, 2}, {3, 4}}, 2}),
		Entry("nested decoded positions", signsim.ErrInvalidShape, []any{[]any{1, []any{2}}, 2}),
		Entry("empty positions", signsim.ErrInvalidShape, []any{[]any{}, 2}),
		Entry("scalar positions", signsim.ErrInvalidShape, []any{4, 2}),
		Entry("fractional position", signsim.ErrInvalidShape, []any{[]float64{1.5, 2}, 2}),
		Entry("non-finite position", signsim.ErrInvalidShape, []any{[]float64{math.Inf(1)}, 2}),
		Entry("string position", signsim.ErrInvalidShape, []any{[]any{"1"}, 2}),
		Entry("negative steps", signsim.ErrInvalidStepCount, []any{[]int{1, 2}, -1}),
		Entry("sequence of steps", signsim.ErrInvalidStepCount, []any{[]int{1, 2}, []int{3}}),
		Entry("fractional steps", signsim.ErrInvalidStepCount, []any{[]int{1, 2}, 2.5}),
		Entry("missing steps", signsim.ErrInvalidStepCount, []any{[]int{1, 2}, nil}),
	)

	It("names the offending argument", func() {
		_, err := signsim.SimulateArgs([]any{1, []any{2}}, 2)
		var usage *signsim.UsageError
		Expect(errors.As(err, &usage)).To(BeTrue())
		Expect(usage.Err).To(Equal(signsim.ErrInvalidShape))
		Expect(err.Error()).To(ContainSubstring("initial_positions"))
		Expect(err.Error()).To(ContainSubstring("element 1"))
	})
})
