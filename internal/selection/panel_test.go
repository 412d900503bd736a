package selection_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cardiosim/internal/catalog"
	"github.com/san-kum/cardiosim/internal/selection"
)

var _ = Describe("Panel", func() {
	var panel *selection.Panel

	BeforeEach(func() {
		panel = selection.NewPanel(catalog.GridOrder, catalog.Dependencies)
	})

	It("starts with nothing checked", func() {
		Expect(panel.Selected()).To(BeEmpty())
		Expect(panel.Len()).To(Equal(len(catalog.GridOrder)))
	})

	It("checks plain drugs on their own", func() {
		Expect(panel.Set(catalog.Efedrina, true)).To(Succeed())
		Expect(panel.Selected()).To(ConsistOf(catalog.Efedrina))
	})

	DescribeTable("forces dependents to the trigger's state",
		func(trigger string, dependents ...string) {
			Expect(panel.Set(trigger, true)).To(Succeed())
			for _, d := range dependents {
				Expect(panel.Checked(d)).To(BeTrue(), d)
			}

			Expect(panel.Set(trigger, false)).To(Succeed())
			for _, d := range dependents {
				Expect(panel.Checked(d)).To(BeFalse(), d)
			}
			Expect(panel.Selected()).To(BeEmpty())
		},
		Entry("alpha-blocker", catalog.Alfabloqueador, catalog.Adrenalina, catalog.Noradrenalina),
		Entry("neostigmine", catalog.Neostigmina, catalog.Acetilcolina),
		Entry("propranolol", catalog.Propanolol, catalog.Noradrenalina, catalog.Isoprenalina, catalog.Adrenalina),
		Entry("atropine", catalog.Atropina, catalog.Acetilcolina, catalog.Pilocarpina),
		Entry("hexamethonium cascades through atropine", catalog.Hexametonio,
			catalog.Nicotina, catalog.Atropina, catalog.Acetilcolina, catalog.Pilocarpina),
	)

	It("keeps dependents in lockstep even when another trigger shares them", func() {
		Expect(panel.Set(catalog.Alfabloqueador, true)).To(Succeed())
		Expect(panel.Set(catalog.Propanolol, true)).To(Succeed())
		Expect(panel.Set(catalog.Propanolol, false)).To(Succeed())

		Expect(panel.Checked(catalog.Alfabloqueador)).To(BeTrue())
		Expect(panel.Checked(catalog.Adrenalina)).To(BeFalse())
		Expect(panel.Checked(catalog.Noradrenalina)).To(BeFalse())
	})

	It("stops cascading at a dependent already in the target state", func() {
		Expect(panel.Set(catalog.Atropina, true)).To(Succeed())
		Expect(panel.Set(catalog.Acetilcolina, false)).To(Succeed())

		Expect(panel.Set(catalog.Hexametonio, true)).To(Succeed())
		Expect(panel.Checked(catalog.Nicotina)).To(BeTrue())
		Expect(panel.Checked(catalog.Atropina)).To(BeTrue())
		Expect(panel.Checked(catalog.Pilocarpina)).To(BeTrue())
		Expect(panel.Checked(catalog.Acetilcolina)).To(BeFalse())
	})

	It("always forces direct dependents of the trigger", func() {
		Expect(panel.Set(catalog.Atropina, true)).To(Succeed())
		Expect(panel.Set(catalog.Acetilcolina, false)).To(Succeed())

		Expect(panel.Set(catalog.Atropina, true)).To(Succeed())
		Expect(panel.Checked(catalog.Acetilcolina)).To(BeTrue())
	})

	It("does not cascade upwards from a dependent", func() {
		Expect(panel.Set(catalog.Acetilcolina, true)).To(Succeed())
		Expect(panel.Selected()).To(ConsistOf(catalog.Acetilcolina))
	})

	It("toggles by position", func() {
		on, err := panel.ToggleAt(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(on).To(BeTrue())
		Expect(panel.Item(1)).To(Equal(catalog.Alfabloqueador))
		Expect(panel.Selected()).To(ConsistOf(catalog.Noradrenalina, catalog.Alfabloqueador, catalog.Adrenalina))

		on, err = panel.ToggleAt(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(on).To(BeFalse())
		Expect(panel.Selected()).To(BeEmpty())
	})

	It("returns selections in panel order", func() {
		Expect(panel.Set(catalog.Hexametonio, true)).To(Succeed())
		Expect(panel.Selected()).To(Equal([]string{
			catalog.Pilocarpina, catalog.Acetilcolina, catalog.Nicotina,
			catalog.Atropina, catalog.Hexametonio,
		}))
	})

	It("loads presets from scratch", func() {
		Expect(panel.Set(catalog.Efedrina, true)).To(Succeed())
		Expect(panel.Load([]string{catalog.Neostigmina})).To(Succeed())
		Expect(panel.Selected()).To(ConsistOf(catalog.Neostigmina, catalog.Acetilcolina))
	})

	It("rejects unknown names", func() {
		Expect(panel.Set("Cafeina", true)).To(MatchError(selection.ErrUnknownItem))
		_, err := panel.ToggleAt(99)
		Expect(err).To(MatchError(selection.ErrUnknownItem))
		Expect(panel.Load([]string{catalog.Efedrina, "Cafeina"})).To(MatchError(selection.ErrUnknownItem))
	})

	It("survives dependency cycles", func() {
		p := selection.NewPanel([]string{"a", "b"}, map[string][]string{"a": {"b"}, "b": {"a"}})
		Expect(p.Set("a", true)).To(Succeed())
		Expect(p.Selected()).To(ConsistOf("a", "b"))
	})
})
