package auth

import (
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("PasswordHasher", func() {
	var hasher *PasswordHasher

	ginkgo.BeforeEach(func() {
		// low cost keeps the suite fast
		hasher = NewPasswordHasher(4)
	})

	ginkgo.It("salts every hash: identical inputs produce different outputs", func() {
		first, err := hasher.Hash("hunter2")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		second, err := hasher.Hash("hunter2")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(first).ToNot(gomega.Equal(second))
	})

	ginkgo.It("verifies the original password against its hash", func() {
		hash, err := hasher.Hash("hunter2")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(hasher.Verify("hunter2", hash)).To(gomega.BeTrue())
		gomega.Expect(hasher.Verify("hunter3", hash)).To(gomega.BeFalse())
	})

	ginkgo.It("is case-sensitive", func() {
		hash, err := hasher.Hash("Secret")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		gomega.Expect(hasher.Verify("secret", hash)).To(gomega.BeFalse())
	})

	ginkgo.It("accepts empty and very long inputs without error", func() {
		emptyHash, err := hasher.Hash("")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(hasher.Verify("", emptyHash)).To(gomega.BeTrue())

		long := strings.Repeat("x", 1000)
		longHash, err := hasher.Hash(long)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(hasher.Verify(long, longHash)).To(gomega.BeTrue())
		gomega.Expect(hasher.Verify(long+"y", longHash)).To(gomega.BeFalse())
	})

	ginkgo.It("returns false for malformed hashes instead of erroring", func() {
		gomega.Expect(hasher.Verify("anything", "not-a-bcrypt-hash")).To(gomega.BeFalse())
		gomega.Expect(hasher.Verify("anything", "")).To(gomega.BeFalse())
	})

	ginkgo.It("defaults to the configured high cost", func() {
		gomega.Expect(NewPasswordHasher(0)).To(gomega.Equal(NewPasswordHasher(DefaultBcryptCost)))
	})
})
