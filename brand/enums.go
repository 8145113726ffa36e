package brand

// Material that produced a preset.
// ENUM(palette, stylesheet, logo, template)
type Source int
