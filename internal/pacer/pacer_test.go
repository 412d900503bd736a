package pacer_test

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cardiosim/internal/pacer"
)

var _ = Describe("Schedule", func() {
	It("builds events from millisecond pairs", func() {
		s := pacer.At(3000, 200, 6000, 700)
		Expect(s).To(Equal(pacer.Schedule{
			{Delay: 3 * time.Second, Interval: 200 * time.Millisecond},
			{Delay: 6 * time.Second, Interval: 700 * time.Millisecond},
		}))
		Expect(s.Duration()).To(Equal(6 * time.Second))
	})

	It("merges schedules by delay, keeping argument order on ties", func() {
		a := pacer.At(2000, 800, 4000, 700)
		b := pacer.At(2000, 500, 3000, 400)
		merged := pacer.Merge(a, b)

		Expect(merged).To(HaveLen(4))
		Expect(merged[0].Interval).To(Equal(800 * time.Millisecond))
		Expect(merged[1].Interval).To(Equal(500 * time.Millisecond))
		Expect(merged[2].Delay).To(Equal(3 * time.Second))
		Expect(merged[3].Delay).To(Equal(4 * time.Second))
	})

	It("reports the interval in effect at a point in time", func() {
		s := pacer.At(3000, 100, 4000, 700)
		Expect(s.IntervalAt(pacer.DefaultInterval, time.Second)).To(Equal(pacer.DefaultInterval))
		Expect(s.IntervalAt(pacer.DefaultInterval, 3*time.Second)).To(Equal(100 * time.Millisecond))
		Expect(s.IntervalAt(pacer.DefaultInterval, 10*time.Second)).To(Equal(700 * time.Millisecond))
	})

	It("scales delays but not intervals", func() {
		s := pacer.At(3000, 200)
		fast := s.Scaled(10)
		Expect(fast[0].Delay).To(Equal(300 * time.Millisecond))
		Expect(fast[0].Interval).To(Equal(200 * time.Millisecond))
		Expect(s[0].Delay).To(Equal(3 * time.Second))
		Expect(s.Scaled(0)).To(Equal(s))
	})

	It("converts toggle intervals to beats per minute", func() {
		Expect(pacer.BPM(500 * time.Millisecond)).To(BeNumerically("~", 60, 1e-9))
		Expect(pacer.BPM(250 * time.Millisecond)).To(BeNumerically("~", 120, 1e-9))
		Expect(pacer.BPM(0)).To(BeZero())
	})
})

var _ = Describe("Heart", func() {
	It("alternates phases and counts full beats", func() {
		h := pacer.NewHeart(0)
		Expect(h.Interval()).To(Equal(pacer.DefaultInterval))
		Expect(h.Phase()).To(Equal(pacer.Systole))

		Expect(h.Toggle()).To(Equal(pacer.Diastole))
		Expect(h.Toggle()).To(Equal(pacer.Systole))
		Expect(h.Beats()).To(Equal(1))
	})

	It("ignores non-positive intervals", func() {
		h := pacer.NewHeart(300 * time.Millisecond)
		h.SetInterval(-1)
		Expect(h.Interval()).To(Equal(300 * time.Millisecond))
	})
})

var _ = Describe("Pacer", func() {
	var (
		heart *pacer.Heart
		p     *pacer.Pacer
	)

	BeforeEach(func() {
		heart = pacer.NewHeart(pacer.DefaultInterval)
		p = pacer.New(heart, pacer.DefaultInterval)
	})

	It("resets the heart to the base interval on apply", func() {
		heart.SetInterval(100 * time.Millisecond)
		p.Apply(pacer.At(1000, 400))
		Expect(heart.Interval()).To(Equal(pacer.DefaultInterval))
	})

	It("applies events of the current generation", func() {
		pending := p.Apply(pacer.At(1000, 400, 2000, 900))
		Expect(p.Fire(pending[0])).To(BeTrue())
		Expect(heart.Interval()).To(Equal(400 * time.Millisecond))
		Expect(p.Fire(pending[1])).To(BeTrue())
		Expect(heart.Interval()).To(Equal(900 * time.Millisecond))
	})

	It("drops events left over from an earlier apply", func() {
		first := p.Apply(pacer.At(3000, 200))
		second := p.Apply(pacer.At(2000, 900))

		Expect(p.Fire(first[0])).To(BeFalse())
		Expect(heart.Interval()).To(Equal(pacer.DefaultInterval))
		Expect(p.Fire(second[0])).To(BeTrue())
		Expect(heart.Interval()).To(Equal(900 * time.Millisecond))
	})

	It("drops everything after Cancel", func() {
		pending := p.Apply(pacer.At(1000, 400))
		p.Cancel()
		Expect(p.Fire(pending[0])).To(BeFalse())
	})
})

var _ = Describe("Runner", func() {
	var (
		mu      sync.Mutex
		changes []pacer.Change
		heart   *pacer.Heart
		runner  *pacer.Runner
	)

	recorded := func() []pacer.Change {
		mu.Lock()
		defer mu.Unlock()
		out := make([]pacer.Change, len(changes))
		copy(out, changes)
		return out
	}

	BeforeEach(func() {
		changes = nil
		heart = pacer.NewHeart(pacer.DefaultInterval)
		runner = pacer.NewRunner(pacer.New(heart, pacer.DefaultInterval), func(c pacer.Change) {
			mu.Lock()
			defer mu.Unlock()
			changes = append(changes, c)
		})
	})

	AfterEach(func() {
		runner.Cancel()
	})

	It("is done immediately with nothing scheduled", func() {
		Expect(runner.Done()).To(BeClosed())
		runner.Start(nil)
		Expect(runner.Done()).To(BeClosed())
	})

	It("fires every event in order", func() {
		runner.Start(pacer.At(3000, 200, 6000, 700, 9000, 500).Scaled(1000))
		Eventually(runner.Done()).WithTimeout(2 * time.Second).Should(BeClosed())

		got := recorded()
		Expect(got).To(HaveLen(3))
		Expect(got[0].Interval).To(Equal(200 * time.Millisecond))
		Expect(got[1].Interval).To(Equal(700 * time.Millisecond))
		Expect(got[2].Interval).To(Equal(500 * time.Millisecond))
		Expect(heart.Interval()).To(Equal(500 * time.Millisecond))
	})

	It("cancels the previous schedule when restarted", func() {
		runner.Start(pacer.At(500, 100))
		runner.Start(pacer.At(10, 900))
		Eventually(runner.Done()).WithTimeout(2 * time.Second).Should(BeClosed())
		Consistently(recorded).WithTimeout(700 * time.Millisecond).Should(HaveLen(1))
		Expect(recorded()[0].Interval).To(Equal(900 * time.Millisecond))
	})

	It("lets the callback call back into the runner", func() {
		var (
			got         []pacer.Change
			closedEarly bool
			self        *pacer.Runner
		)
		self = pacer.NewRunner(pacer.New(pacer.NewHeart(0), 0), func(c pacer.Change) {
			got = append(got, c)
			select {
			case <-self.Done():
				closedEarly = true
			default:
			}
			self.Cancel()
		})
		DeferCleanup(self.Cancel)

		self.Start(pacer.At(10, 400, 1000, 900))
		Eventually(self.Done()).WithTimeout(2 * time.Second).Should(BeClosed())
		Consistently(func() int { return len(got) }).WithTimeout(1200 * time.Millisecond).Should(Equal(1))
		Expect(got[0].Interval).To(Equal(400 * time.Millisecond))
		Expect(closedEarly).To(BeFalse())
	})

	It("closes Done on cancel", func() {
		runner.Start(pacer.At(5000, 100))
		Expect(runner.Done()).NotTo(BeClosed())
		runner.Cancel()
		Expect(runner.Done()).To(BeClosed())
		Expect(recorded()).To(BeEmpty())
	})
})
