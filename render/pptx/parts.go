package pptx

import (
	"strconv"

	"github.com/beevik/etree"

	"infogen/layout"
	"infogen/misc"
)

// Office's exact widescreen slide size. The canvas rounds 13 1/3 in to
// 13.333 for layout math; the writer emits the standard size so readers see
// a regular 16:9 slide.
const (
	slideWidthEMU  = 12192000
	slideHeightEMU = 6858000
)

// Static package parts. These never depend on the layout except where noted;
// they are regenerated per render because etree documents are mutable.

func contentTypesDoc() *etree.Document {
	doc := newXMLDoc()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	def := func(ext, ct string) {
		e := types.CreateElement("Default")
		e.CreateAttr("Extension", ext)
		e.CreateAttr("ContentType", ct)
	}
	override := func(part, ct string) {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", part)
		e.CreateAttr("ContentType", ct)
	}

	def("rels", "application/vnd.openxmlformats-package.relationships+xml")
	def("xml", "application/xml")
	override("/"+presentationPart, "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml")
	override("/"+masterPart, "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml")
	override("/"+layoutPart, "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml")
	override("/"+slidePart, "application/vnd.openxmlformats-officedocument.presentationml.slide+xml")
	override("/"+themePart, "application/vnd.openxmlformats-officedocument.theme+xml")
	override("/"+corePropsPart, "application/vnd.openxmlformats-package.core-properties+xml")
	override("/"+appPropsPart, "application/vnd.openxmlformats-officedocument.extended-properties+xml")
	return doc
}

func relationshipsDoc(rels ...[3]string) *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/relationships")
	for _, r := range rels {
		e := root.CreateElement("Relationship")
		e.CreateAttr("Id", r[0])
		e.CreateAttr("Type", r[1])
		e.CreateAttr("Target", r[2])
	}
	return doc
}

func rootRelsDoc() *etree.Document {
	return relationshipsDoc(
		[3]string{"rId1", nsRelationships + "/officeDocument", presentationPart},
		[3]string{"rId2", "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties", corePropsPart},
		[3]string{"rId3", nsRelationships + "/extended-properties", appPropsPart},
	)
}

func presRelsDoc() *etree.Document {
	return relationshipsDoc(
		[3]string{"rId1", nsRelationships + "/slideMaster", "slideMasters/slideMaster1.xml"},
		[3]string{"rId2", nsRelationships + "/slide", "slides/slide1.xml"},
		[3]string{"rId3", nsRelationships + "/theme", "theme/theme1.xml"},
	)
}

func masterRelsDoc() *etree.Document {
	return relationshipsDoc(
		[3]string{"rId1", nsRelationships + "/slideLayout", "../slideLayouts/slideLayout1.xml"},
		[3]string{"rId2", nsRelationships + "/theme", "../theme/theme1.xml"},
	)
}

func layoutRelsDoc() *etree.Document {
	return relationshipsDoc(
		[3]string{"rId1", nsRelationships + "/slideMaster", "../slideMasters/slideMaster1.xml"},
	)
}

func slideRelsDoc() *etree.Document {
	return relationshipsDoc(
		[3]string{"rId1", nsRelationships + "/slideLayout", "../slideLayouts/slideLayout1.xml"},
	)
}

func corePropsDoc(l *layout.Layout) *etree.Document {
	title := ""
	if l.Title != nil && l.Title.Text != nil {
		title = l.Title.Text.Content
	}

	doc := newXMLDoc()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	root.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	root.CreateElement("dc:title").SetText(title)
	root.CreateElement("dc:creator").SetText(misc.GetAppName())
	return doc
}

func appPropsDoc() *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("Properties")
	root.CreateAttr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	root.CreateElement("Application").SetText(misc.GetAppName())
	root.CreateElement("AppVersion").SetText("1.0000")
	root.CreateElement("Slides").SetText("1")
	return doc
}

func presentationDoc() *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("p:presentation")
	root.CreateAttr("xmlns:a", nsDrawing)
	root.CreateAttr("xmlns:r", nsRelationships)
	root.CreateAttr("xmlns:p", nsPresentation)

	masters := root.CreateElement("p:sldMasterIdLst")
	master := masters.CreateElement("p:sldMasterId")
	master.CreateAttr("id", "2147483648")
	master.CreateAttr("r:id", "rId1")

	slides := root.CreateElement("p:sldIdLst")
	slide := slides.CreateElement("p:sldId")
	slide.CreateAttr("id", "256")
	slide.CreateAttr("r:id", "rId2")

	size := root.CreateElement("p:sldSz")
	size.CreateAttr("cx", strconv.Itoa(slideWidthEMU))
	size.CreateAttr("cy", strconv.Itoa(slideHeightEMU))

	notes := root.CreateElement("p:notesSz")
	notes.CreateAttr("cx", "6858000")
	notes.CreateAttr("cy", "9144000")
	return doc
}

// emptyShapeTree builds the mandatory group shape header every cSld carries.
func emptyShapeTree(parent *etree.Element) *etree.Element {
	tree := parent.CreateElement("p:spTree")

	nv := tree.CreateElement("p:nvGrpSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", "1")
	cNvPr.CreateAttr("name", "")
	nv.CreateElement("p:cNvGrpSpPr")
	nv.CreateElement("p:nvPr")

	grpSpPr := tree.CreateElement("p:grpSpPr")
	xfrm := grpSpPr.CreateElement("a:xfrm")
	for _, tag := range []string{"a:off", "a:chOff"} {
		e := xfrm.CreateElement(tag)
		e.CreateAttr("x", "0")
		e.CreateAttr("y", "0")
	}
	for _, tag := range []string{"a:ext", "a:chExt"} {
		e := xfrm.CreateElement(tag)
		e.CreateAttr("cx", "0")
		e.CreateAttr("cy", "0")
	}
	return tree
}

func masterDoc() *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("p:sldMaster")
	root.CreateAttr("xmlns:a", nsDrawing)
	root.CreateAttr("xmlns:r", nsRelationships)
	root.CreateAttr("xmlns:p", nsPresentation)

	cSld := root.CreateElement("p:cSld")
	emptyShapeTree(cSld)

	clrMap := root.CreateElement("p:clrMap")
	for _, m := range [][2]string{
		{"bg1", "lt1"}, {"tx1", "dk1"}, {"bg2", "lt2"}, {"tx2", "dk2"},
		{"accent1", "accent1"}, {"accent2", "accent2"}, {"accent3", "accent3"},
		{"accent4", "accent4"}, {"accent5", "accent5"}, {"accent6", "accent6"},
		{"hlink", "hlink"}, {"folHlink", "folHlink"},
	} {
		clrMap.CreateAttr(m[0], m[1])
	}

	layouts := root.CreateElement("p:sldLayoutIdLst")
	id := layouts.CreateElement("p:sldLayoutId")
	id.CreateAttr("id", "2147483649")
	id.CreateAttr("r:id", "rId1")
	return doc
}

func layoutDoc() *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("p:sldLayout")
	root.CreateAttr("xmlns:a", nsDrawing)
	root.CreateAttr("xmlns:r", nsRelationships)
	root.CreateAttr("xmlns:p", nsPresentation)
	root.CreateAttr("type", "blank")
	root.CreateAttr("preserve", "1")

	cSld := root.CreateElement("p:cSld")
	cSld.CreateAttr("name", "Blank")
	emptyShapeTree(cSld)

	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

// themeDoc emits the smallest format scheme Office accepts: three entries in
// every style list, Office defaults for fonts and colors.
func themeDoc() *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("a:theme")
	root.CreateAttr("xmlns:a", nsDrawing)
	root.CreateAttr("name", "Office Theme")

	elements := root.CreateElement("a:themeElements")

	clrScheme := elements.CreateElement("a:clrScheme")
	clrScheme.CreateAttr("name", "Office")
	sysClr := func(tag, val, lastClr string) {
		e := clrScheme.CreateElement(tag).CreateElement("a:sysClr")
		e.CreateAttr("val", val)
		e.CreateAttr("lastClr", lastClr)
	}
	srgbClr := func(tag, val string) {
		clrScheme.CreateElement(tag).CreateElement("a:srgbClr").CreateAttr("val", val)
	}
	sysClr("a:dk1", "windowText", "000000")
	sysClr("a:lt1", "window", "FFFFFF")
	srgbClr("a:dk2", "44546A")
	srgbClr("a:lt2", "E7E6E6")
	srgbClr("a:accent1", "4472C4")
	srgbClr("a:accent2", "ED7D31")
	srgbClr("a:accent3", "A5A5A5")
	srgbClr("a:accent4", "FFC000")
	srgbClr("a:accent5", "5B9BD5")
	srgbClr("a:accent6", "70AD47")
	srgbClr("a:hlink", "0563C1")
	srgbClr("a:folHlink", "954F72")

	fontScheme := elements.CreateElement("a:fontScheme")
	fontScheme.CreateAttr("name", "Office")
	for _, tag := range []string{"a:majorFont", "a:minorFont"} {
		font := fontScheme.CreateElement(tag)
		latin := font.CreateElement("a:latin")
		latin.CreateAttr("typeface", "Calibri")
		font.CreateElement("a:ea").CreateAttr("typeface", "")
		font.CreateElement("a:cs").CreateAttr("typeface", "")
	}

	fmtScheme := elements.CreateElement("a:fmtScheme")
	fmtScheme.CreateAttr("name", "Office")

	fills := fmtScheme.CreateElement("a:fillStyleLst")
	for i := 0; i < 3; i++ {
		fills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}

	lines := fmtScheme.CreateElement("a:lnStyleLst")
	for _, w := range []string{"6350", "12700", "19050"} {
		ln := lines.CreateElement("a:ln")
		ln.CreateAttr("w", w)
		ln.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}

	effects := fmtScheme.CreateElement("a:effectStyleLst")
	for i := 0; i < 3; i++ {
		effects.CreateElement("a:effectStyle").CreateElement("a:effectLst")
	}

	bgFills := fmtScheme.CreateElement("a:bgFillStyleLst")
	for i := 0; i < 3; i++ {
		bgFills.CreateElement("a:solidFill").CreateElement("a:schemeClr").CreateAttr("val", "phClr")
	}

	return doc
}
