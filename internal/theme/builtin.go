package theme

var baseTypography = Typography{
	TitleSize:   22,
	HeadingSize: 13,
	BodySize:    10,
	SmallSize:   8,
	LineHeight:  1.45,
}

var baseSpacing = Spacing{
	Margin:       18,
	SectionGap:   8,
	ParagraphGap: 3,
	CellPadding:  2,
}

// builtins lists the shipped themes. The first entry is the default.
var builtins = []Theme{
	{
		Name: DefaultName,
		Colors: Colors{
			Primary:         RGB{37, 99, 235},
			Secondary:       RGB{30, 64, 175},
			Accent:          RGB{37, 99, 235},
			Surface:         RGB{248, 250, 252},
			Text:            RGB{15, 23, 42},
			Muted:           RGB{100, 116, 139},
			Border:          RGB{226, 232, 240},
			TableHeader:     RGB{37, 99, 235},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{241, 245, 249},
		},
		Typography: baseTypography,
		Spacing:    baseSpacing,
		Effects:    Effects{GradientHeader: true},
	},
	{
		Name: "ocean",
		Colors: Colors{
			Primary:         RGB{8, 145, 178},
			Secondary:       RGB{14, 116, 144},
			Accent:          RGB{6, 182, 212},
			Surface:         RGB{236, 254, 255},
			Text:            RGB{22, 78, 99},
			Muted:           RGB{71, 85, 105},
			Border:          RGB{165, 243, 252},
			TableHeader:     RGB{14, 116, 144},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{236, 254, 255},
		},
		Typography: baseTypography,
		Spacing:    baseSpacing,
		Effects:    Effects{GradientHeader: true, Shadows: true},
	},
	{
		Name: "forest",
		Colors: Colors{
			Primary:         RGB{21, 128, 61},
			Secondary:       RGB{22, 101, 52},
			Accent:          RGB{34, 197, 94},
			Surface:         RGB{240, 253, 244},
			Text:            RGB{20, 83, 45},
			Muted:           RGB{87, 83, 78},
			Border:          RGB{187, 247, 208},
			TableHeader:     RGB{22, 101, 52},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{240, 253, 244},
		},
		Typography: baseTypography,
		Spacing:    baseSpacing,
		Effects:    Effects{GradientHeader: true},
	},
	{
		Name: "sunset",
		Colors: Colors{
			Primary:         RGB{234, 88, 12},
			Secondary:       RGB{190, 18, 60},
			Accent:          RGB{249, 115, 22},
			Surface:         RGB{255, 247, 237},
			Text:            RGB{67, 20, 7},
			Muted:           RGB{120, 113, 108},
			Border:          RGB{254, 215, 170},
			TableHeader:     RGB{194, 65, 12},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{255, 247, 237},
		},
		Typography: baseTypography,
		Spacing:    baseSpacing,
		Effects:    Effects{GradientHeader: true, Shadows: true},
	},
	{
		Name: "monochrome",
		Colors: Colors{
			Primary:         RGB{23, 23, 23},
			Secondary:       RGB{64, 64, 64},
			Accent:          RGB{82, 82, 82},
			Surface:         RGB{250, 250, 250},
			Text:            RGB{10, 10, 10},
			Muted:           RGB{115, 115, 115},
			Border:          RGB{212, 212, 212},
			TableHeader:     RGB{38, 38, 38},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{245, 245, 245},
		},
		Typography: baseTypography,
		Spacing:    baseSpacing,
	},
	{
		Name: "royal",
		Colors: Colors{
			Primary:         RGB{109, 40, 217},
			Secondary:       RGB{76, 29, 149},
			Accent:          RGB{168, 85, 247},
			Surface:         RGB{250, 245, 255},
			Text:            RGB{46, 16, 101},
			Muted:           RGB{107, 114, 128},
			Border:          RGB{233, 213, 255},
			TableHeader:     RGB{91, 33, 182},
			TableHeaderText: RGB{255, 255, 255},
			TableRow:        RGB{255, 255, 255},
			TableRowAlt:     RGB{250, 245, 255},
		},
		Typography: Typography{
			TitleSize:   24,
			HeadingSize: 14,
			BodySize:    10,
			SmallSize:   8,
			LineHeight:  1.5,
		},
		Spacing: baseSpacing,
		Effects: Effects{GradientHeader: true, Shadows: true},
	},
}
