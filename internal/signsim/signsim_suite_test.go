package signsim_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSignsim(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Signsim Suite")
}
