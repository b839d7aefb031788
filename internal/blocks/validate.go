package blocks

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	errRowLength = validation.NewError("validation_table_row_length", "row {{.row}} has {{.got}} cells, expected {{.want}}")
	errBlockNil  = validation.NewError("validation_block_nil", "block must not be nil")
)

// Validate rejects malformed blocks. Errors are keyed by block position.
// Unknown blocks pass so documents written by newer editors still load.
func Validate(doc Document) error {
	errs := validation.Errors{}
	for index, block := range doc {
		if err := ValidateBlock(block); err != nil {
			errs[strconv.Itoa(index)] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateBlock validates a single block.
func ValidateBlock(block Block) error {
	if block == nil {
		return errBlockNil
	}
	if validatable, ok := block.(validation.Validatable); ok {
		return validatable.Validate()
	}
	return nil
}

func (p Paragraph) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Content, validation.Required),
	)
}

func (h Heading) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Level, validation.Required, validation.Min(2), validation.Max(4)),
		validation.Field(&h.Content, validation.Required),
	)
}

func (i Image) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Src, validation.Required),
		validation.Field(&i.Alt, validation.Required),
	)
}

func (v Video) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.URL, validation.Required),
		validation.Field(&v.AspectRatio, validation.In(AspectRatio16x9, AspectRatio4x3, AspectRatio1x1)),
	)
}

func (y YouTube) Validate() error {
	return validation.ValidateStruct(&y,
		validation.Field(&y.VideoID, validation.Required),
	)
}

func (g GIF) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Src, validation.Required),
	)
}

func (l List) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Items, validation.Each(validation.Required)),
	)
}

func (l LinkBlock) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Href, validation.Required),
		validation.Field(&l.Text, validation.Required),
	)
}

func (b Blockquote) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Content, validation.Required),
	)
}

func (c Callout) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Variant, validation.In(CalloutInfo, CalloutWarning, CalloutSuccess, CalloutTip)),
		validation.Field(&c.Content, validation.Required),
	)
}

func (c Code) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Content, validation.Required),
	)
}

func (h Highlight) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Content, validation.Required),
		validation.Field(&h.Color, validation.In(HighlightPrimary, HighlightAccent, HighlightWarning)),
	)
}

func (d Divider) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Style, validation.In(DividerSolid, DividerDashed, DividerGradient)),
	)
}

func (f Feature) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required),
		validation.Field(&f.Description, validation.Required),
	)
}

func (g FeatureGrid) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Items),
	)
}

func (t ComparisonTable) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Headers, validation.Required, validation.Each(validation.Required)),
		validation.Field(&t.Rows, validation.By(rowsMatch(len(t.Headers)))),
	)
}

func (s StyledText) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Content, validation.Required),
		validation.Field(&s.Font, validation.In(FontSans, FontSerif, FontMono, FontDisplay)),
		validation.Field(&s.Size, validation.In(TextSmall, TextBase, TextLarge, TextXLarge, Text2XL)),
		validation.Field(&s.Color, validation.In(TextDefault, TextPrimary, TextAccent, TextMuted, TextWarning)),
		validation.Field(&s.Weight, validation.In(WeightNormal, WeightMedium, WeightSemibold, WeightBold)),
	)
}

func rowsMatch(width int) validation.RuleFunc {
	return func(value any) error {
		rows, _ := value.([][]string)
		for index, row := range rows {
			if len(row) != width {
				return errRowLength.SetParams(map[string]any{
					"row":  index,
					"got":  len(row),
					"want": width,
				})
			}
		}
		return nil
	}
}
