package generation

import (
	"fmt"

	"github.com/Nurash908/Selfie2Snap/internal/domain"
)

// Style pairs a catalog id with the fixed prompt fragment sent to the
// composition backend.
type Style struct {
	ID             domain.StyleID
	Name           string
	PromptFragment string
}

var styles = []Style{
	{domain.StyleRomantic, "Romantic", "a warm, softly lit romantic portrait with golden-hour glow"},
	{domain.StyleCinematic, "Cinematic", "a moody cinematic still with shallow depth of field and teal-orange grading"},
	{domain.StyleAnime, "Anime", "a vibrant anime illustration with clean line art and cel shading"},
	{domain.StyleVintage, "Vintage", "a faded vintage photograph with film grain and muted sepia tones"},
	{domain.StyleFantasy, "Fantasy", "an epic fantasy painting with dramatic lighting and enchanted scenery"},
	{domain.StyleWatercolor, "Watercolor", "a delicate watercolor painting with soft washes and paper texture"},
	{domain.StylePopArt, "Pop Art", "a bold pop-art print with halftone dots and saturated primary colors"},
	{domain.StyleCyberpunk, "Cyberpunk", "a neon-drenched cyberpunk scene with rain-slick streets and holograms"},
}

// Styles returns the fixed catalog in presentation order.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

func StyleByID(id domain.StyleID) (Style, bool) {
	for _, s := range styles {
		if s.ID == id {
			return s, true
		}
	}
	return Style{}, false
}

// BuildPrompt renders the full style prompt for one frame of a batch.
func BuildPrompt(style Style, frameIndex, frameCount int) string {
	prompt := fmt.Sprintf("Composite the two portraits together into %s.", style.PromptFragment)
	if frameCount > 1 {
		prompt += fmt.Sprintf(" Frame %d of %d: vary the pose and framing from the other frames.", frameIndex+1, frameCount)
	}
	return prompt
}
