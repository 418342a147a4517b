package swagger_test

import (
	"context"

	"github.com/frahmantamala/payroll-report/internal/transport/swagger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoadSpec", func() {
	It("should parse and validate the embedded document", func() {
		doc, err := swagger.LoadSpec(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/ping",
			"/health",
			"/units",
			"/units/{unit}",
			"/company",
			"/export",
		} {
			Expect(doc.Paths.Value(path)).NotTo(BeNil(), path)
		}
		Expect(doc.Servers).To(HaveLen(1))
		Expect(doc.Servers[0].URL).To(Equal("/api/v1"))
	})
})
