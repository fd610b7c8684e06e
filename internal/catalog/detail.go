package catalog

import (
	"fmt"
	"net/url"

	"go-boutique-ws/internal/model"
)

// placeholderImage keeps the carousel non-empty for products without photos.
const placeholderImage = "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg"

// Carousel is the image cursor for a product detail view. The frame list
// always has at least one entry; Next and Previous wrap around.
type Carousel struct {
	frames []string
	index  int
}

func NewCarousel(p model.Product) *Carousel {
	frames := p.ImageURLs
	if len(frames) == 0 {
		frames = []string{placeholderImage}
	}
	return &Carousel{frames: append([]string(nil), frames...)}
}

func (c *Carousel) Current() string {
	return c.frames[c.index]
}

func (c *Carousel) Index() int {
	return c.index
}

func (c *Carousel) Len() int {
	return len(c.frames)
}

func (c *Carousel) Frames() []string {
	return append([]string(nil), c.frames...)
}

func (c *Carousel) Next() {
	c.index = (c.index + 1) % len(c.frames)
}

func (c *Carousel) Previous() {
	if c.index == 0 {
		c.index = len(c.frames) - 1
	} else {
		c.index--
	}
}

// Available reports whether a product can be ordered. Both checks are
// required: stock can reach zero while the stored status lags behind.
func Available(p model.Product) bool {
	return p.Status == model.StatusAvailable && p.Stock > 0
}

// OrderLink builds the WhatsApp deep link with a pre-filled interest message
// for the seller's number.
func OrderLink(p model.Product, sellerPhone string) string {
	msg := fmt.Sprintf("Hi! I'm interested in *%s* priced at %.2f. Is it available?", p.Name, p.Price)
	return "https://wa.me/" + sellerPhone + "?text=" + url.QueryEscape(msg)
}
