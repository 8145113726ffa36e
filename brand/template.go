package brand

import (
	"archive/zip"
	"io"

	"github.com/beevik/etree"

	"infogen/archive"
	"infogen/common"
)

// themePart is where OOXML presentations keep their default theme.
const themePart = "ppt/theme/theme1.xml"

// schemeSlots lists the clrScheme slots worth keeping, accents first. dk1
// and lt1 are window colors, not identity.
var schemeSlots = [...]string{"accent1", "accent2", "accent3", "accent4", "accent5", "accent6", "dk2", "lt2"}

// FromTemplate reads brand hints from a caller supplied PPTX template. The
// read is shallow on purpose: one zip part, the color scheme slots and the
// major latin typeface. Slide content of the template is never parsed.
func (x *Extractor) FromTemplate(data []byte) (*Preset, error) {
	var themeXML []byte
	err := archive.Walk("template", data, themePart, func(name string, f *zip.File) error {
		rc, err := f.Open()
		if err != nil {
			return err
		}
		defer rc.Close()
		themeXML, err = io.ReadAll(rc)
		return err
	})
	if err != nil {
		return nil, common.WrapError(common.KindInputInvalid, err, "reading template")
	}
	if len(themeXML) == 0 {
		return nil, common.NewError(common.KindInputInvalid, "template has no %s part", themePart)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(themeXML); err != nil {
		return nil, common.WrapError(common.KindInputInvalid, err, "parsing template theme")
	}

	p := &Preset{Source: SourceTemplate}

	// Unprefixed path segments match any namespace prefix, so templates
	// produced by tools other than Office still read.
	if scheme := doc.FindElement("//clrScheme"); scheme != nil {
		seen := make(map[string]bool, len(schemeSlots))
		for _, slot := range schemeSlots {
			clr := scheme.FindElement(slot + "/srgbClr")
			if clr == nil {
				continue
			}
			hex, err := common.NormalizeHexColor(clr.SelectAttrValue("val", ""))
			if err != nil || seen[hex] {
				continue
			}
			seen[hex] = true
			p.Colors = append(p.Colors, hex)
		}
	}
	p.Colors = capColors(dropExtremes(p.Colors))

	if latin := doc.FindElement("//fontScheme/majorFont/latin"); latin != nil {
		p.Font = latin.SelectAttrValue("typeface", "")
	}
	return p, nil
}
