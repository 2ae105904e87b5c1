package mandelbrot

import (
	"math"
	"testing"
)

func TestController_Drag(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := testContext(t)
	ct := NewController(c)

	if err := ct.PointerMove(ctx, 50, 50); err != nil {
		t.Fatal(err)
	}
	if c.View() != testView() {
		t.Fatal("PointerMove without a press changed the view")
	}

	ct.PointerDown(10, 10)
	if !ct.Dragging() {
		t.Fatal("Dragging() = false after PointerDown")
	}
	if err := ct.PointerMove(ctx, 20, 10); err != nil {
		t.Fatal(err)
	}
	if err := ct.PointerMove(ctx, 20, 42); err != nil {
		t.Fatal(err)
	}

	v := c.View()
	wantX := -0.5 - (10.0/256)*3.5
	wantY := -(32.0 / 256) * 3.5
	if math.Abs(v.CenterX-wantX) > 1e-12 || math.Abs(v.CenterY-wantY) > 1e-12 {
		t.Errorf("centre after drag = (%v, %v), want (%v, %v)", v.CenterX, v.CenterY, wantX, wantY)
	}

	ct.PointerUp()
	if ct.Dragging() {
		t.Error("Dragging() = true after PointerUp")
	}
	if err := ct.PointerMove(ctx, 200, 200); err != nil {
		t.Fatal(err)
	}
	if c.View() != v {
		t.Error("PointerMove after release changed the view")
	}

	ct.PointerDown(0, 0)
	ct.PointerLeave()
	if ct.Dragging() {
		t.Error("Dragging() = true after PointerLeave")
	}
}

func TestController_Wheel(t *testing.T) {
	c := newTestCoordinator(t)
	ctx := testContext(t)
	ct := NewController(c)

	anchor := c.View().ScreenToPlane(40, 200)

	if err := ct.Wheel(ctx, 40, 200, -120); err != nil {
		t.Fatal(err)
	}
	v := c.View()
	if v.Zoom != ZoomFactor {
		t.Errorf("Zoom after wheel up = %v, want %v", v.Zoom, ZoomFactor)
	}
	if p := v.ScreenToPlane(40, 200); math.Abs(p.X-anchor.X) > 1e-12 || math.Abs(p.Y-anchor.Y) > 1e-12 {
		t.Errorf("wheel zoom moved the cursor point from %v to %v", anchor, p)
	}

	if err := ct.Wheel(ctx, 40, 200, 0); err != nil {
		t.Fatal(err)
	}
	if c.View() != v {
		t.Error("Wheel with zero delta changed the view")
	}

	if err := ct.Wheel(ctx, 40, 200, 3); err != nil {
		t.Fatal(err)
	}
	if got := c.View().Zoom; math.Abs(got-1) > 1e-15 {
		t.Errorf("Zoom after wheel down = %v, want 1", got)
	}

	if err := c.Wait(ctx); err != nil {
		t.Fatal(err)
	}
}
