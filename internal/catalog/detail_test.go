package catalog

import (
	"testing"
	"time"

	"go-boutique-ws/internal/model"

	"github.com/stretchr/testify/require"
)

func TestCarouselWrapsAround(t *testing.T) {
	p := testProduct("bag", time.Now())
	p.ImageURLs = []string{"a.jpg", "b.jpg", "c.jpg"}

	c := NewCarousel(p)
	require.Equal(t, 3, c.Len())
	require.Equal(t, 0, c.Index())

	c.Next()
	c.Next()
	require.Equal(t, 2, c.Index())
	c.Next()
	require.Equal(t, 0, c.Index(), "next at last frame wraps to first")

	c.Previous()
	require.Equal(t, 2, c.Index(), "previous at first frame wraps to last")
	require.Equal(t, "c.jpg", c.Current())
}

func TestCarouselSubstitutesPlaceholder(t *testing.T) {
	p := testProduct("no-photos", time.Now())
	p.ImageURLs = nil

	c := NewCarousel(p)
	require.Equal(t, 1, c.Len())
	require.Equal(t, placeholderImage, c.Current())

	c.Next()
	require.Equal(t, 0, c.Index())
	c.Previous()
	require.Equal(t, 0, c.Index())
}

func TestAvailableNeedsBothStatusAndStock(t *testing.T) {
	p := testProduct("dress", time.Now())

	p.Status = model.StatusAvailable
	p.Stock = 3
	require.True(t, Available(p))

	// stock drifted to zero without the status following
	p.Stock = 0
	require.False(t, Available(p))

	p.Status = model.StatusSoldOut
	p.Stock = 3
	require.False(t, Available(p))
}

func TestOrderLinkEscapesMessage(t *testing.T) {
	p := testProduct("Gold & Silver Set", time.Now())
	p.Price = 1500

	link := OrderLink(p, "919876543210")
	require.Contains(t, link, "https://wa.me/919876543210?text=")
	require.Contains(t, link, "Gold+%26+Silver+Set")
	require.NotContains(t, link, " ")
}
