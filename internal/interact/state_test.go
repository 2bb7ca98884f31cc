package interact

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fraktale/internal/render"
)

var _ = Describe("Controller", func() {
	var (
		vp      *render.Viewport
		c       *Controller
		renders int
	)

	BeforeEach(func() {
		vp = render.NewViewport(640, 480)
		c = NewController(vp)
		renders = 0
		c.OnChange(func() { renders++ })
	})

	It("starts idle", func() {
		Expect(c.State()).To(Equal(Idle))
	})

	Context("when the pointer is pressed", func() {
		BeforeEach(func() {
			c.PointerDown(10, 20)
		})

		It("is dragging", func() {
			Expect(c.State()).To(Equal(Dragging))
		})

		It("accumulates every move into the offset", func() {
			c.PointerMove(15, 25)
			c.PointerMove(5, 40)
			Expect(vp.OffsetX).To(BeNumerically("==", -5))
			Expect(vp.OffsetY).To(BeNumerically("==", 20))
			Expect(renders).To(Equal(2))
		})

		It("moves the world origin with the pointer", func() {
			ox, oy := vp.Origin()
			c.PointerMove(110, 70)
			nx, ny := vp.Origin()
			Expect(nx - ox).To(BeNumerically("~", 100, 1e-9))
			Expect(ny - oy).To(BeNumerically("~", 50, 1e-9))
		})

		DescribeTable("returns to idle",
			func(end func(*Controller)) {
				end(c)
				Expect(c.State()).To(Equal(Idle))
				c.PointerMove(300, 300)
				Expect(vp.OffsetX).To(BeZero())
				Expect(renders).To(BeZero())
			},
			Entry("on pointer up", func(c *Controller) { c.PointerUp() }),
			Entry("on pointer leave", func(c *Controller) { c.PointerLeave() }),
		)
	})

	Context("when the wheel turns", func() {
		It("zooms in by 1.1 for negative deltas", func() {
			Expect(c.Wheel(-3)).To(BeTrue())
			Expect(vp.Zoom).To(BeNumerically("~", render.DefaultZoom*1.1, 1e-12))
			Expect(renders).To(Equal(1))
		})

		It("zooms out by 1/1.1 for positive deltas", func() {
			Expect(c.Wheel(3)).To(BeTrue())
			Expect(vp.Zoom).To(BeNumerically("~", render.DefaultZoom/1.1, 1e-12))
		})

		It("keeps the zoom above the minimum", func() {
			for i := 0; i < 400; i++ {
				c.Wheel(1)
			}
			Expect(vp.Zoom).To(BeNumerically(">", render.MinZoom))
		})

		It("does not change the drag state", func() {
			c.PointerDown(0, 0)
			c.Wheel(-1)
			Expect(c.State()).To(Equal(Dragging))
		})
	})

	It("resets the viewport", func() {
		c.PointerDown(0, 0)
		c.PointerMove(40, 40)
		c.Wheel(-1)
		c.Reset()
		Expect(c.State()).To(Equal(Idle))
		Expect(vp.Zoom).To(Equal(render.DefaultZoom))
		Expect(vp.OffsetX).To(BeZero())
		Expect(vp.OffsetY).To(BeZero())
	})
})
