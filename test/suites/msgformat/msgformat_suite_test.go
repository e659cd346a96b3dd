package msgformat_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestMsgformat(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Msgformat Suite")
}
