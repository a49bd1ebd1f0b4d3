package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmptyStringReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", Render(""))
}

func TestRenderProducesNonEmptyOutputForText(t *testing.T) {
	out := Render("aifr")
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "a")
}

func TestGradientColorClampsPosition(t *testing.T) {
	assert.Equal(t, retroPalette[0], gradientColor(-1))
	assert.Equal(t, retroPalette[len(retroPalette)-1], gradientColor(2))
}

func TestInterpolateMidpoint(t *testing.T) {
	c := interpolate([3]int{0, 0, 0}, [3]int{100, 100, 100}, 0.5)
	assert.Equal(t, [3]int{50, 50, 50}, c)
}

func TestVersionIncludesVersionString(t *testing.T) {
	out := Version("1.2.3")
	assert.NotEmpty(t, out)
}
