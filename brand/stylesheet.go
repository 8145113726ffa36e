package brand

// FromStylesheet scans a stylesheet for declared colors and font families.
// The scanner keeps first appearance order, which on corporate sheets puts
// the custom property palette block ahead of component rules; near-white
// and near-black values are dropped as page chrome rather than identity.
// The tokenizer recovers from anything, so no stylesheet is unreadable.
func (x *Extractor) FromStylesheet(data []byte) (*Preset, error) {
	sig := x.css.Parse(data, "brand stylesheet")

	p := &Preset{
		Colors: capColors(dropExtremes(sig.Colors)),
		Source: SourceStylesheet,
	}
	if len(sig.Families) > 0 {
		p.Font = sig.Families[0]
	}
	return p, nil
}
