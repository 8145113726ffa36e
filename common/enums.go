// Enumerations shared between the pipeline, the gateway and the command line
// surface. They live in a separate package so renderers and stores can use
// them without pulling in configuration loading.
package common

// Specification of requested artifact output format.
// ENUM(slide, svg, raster)
type OutputFormat int

func (o OutputFormat) Ext() string {
	switch o {
	case OutputFormatSlide:
		return ".pptx"
	case OutputFormatSvg:
		return ".svg"
	case OutputFormatRaster:
		return ".png"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

func (o OutputFormat) MIME() string {
	switch o {
	case OutputFormatSlide:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case OutputFormatSvg:
		return "image/svg+xml"
	case OutputFormatRaster:
		return "image/png"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Classification of generation failures. The set is closed: every stage
// boundary returns one of these wrapped in *Error and the orchestrator maps
// nothing else to the caller.
// ENUM(rate-limited, quota-exceeded, plan-limit-exceeded, plan-forbids-tier, brief-rejected, all-models-failed, timeout, input-invalid, layout-unsatisfiable, internal-error)
type Kind int

// Retryable reports whether the caller may retry the request later without
// changing it.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindTimeout
}
