package domain

func price(v float64) *float64 { return &v }

// DefaultProducts is the bundled seed catalog, persisted on the first
// load when no catalog exists yet.
var DefaultProducts = []Product{
	{
		ID:              1,
		Name:            "Aurora Desk Lamp",
		Category:        "lighting",
		Price:           49.99,
		OriginalPrice:   price(69.99),
		Description:     "Warm dimmable LED desk lamp with a walnut base",
		FullDescription: "Warm dimmable LED desk lamp with a solid walnut base, touch controls and a memory function that restores the last brightness level.",
		Image:           "https://images.pexels.com/photos/1112598/pexels-photo-1112598.jpeg",
		Rating:          4.5,
		Reviews:         128,
		Badge:           "Sale",
		Specs: SpecList{
			{Key: "Material", Value: "Walnut / Aluminium"},
			{Key: "Power", Value: "9W LED"},
			{Key: "Color Temperature", Value: "2700-5000K"},
		},
	},
	{
		ID:          2,
		Name:        "Fjord Lounge Chair",
		Category:    "furniture",
		Price:       329.0,
		Description: "Mid-century lounge chair in oiled oak",
		Image:       "https://images.pexels.com/photos/1350789/pexels-photo-1350789.jpeg",
		Rating:      4.8,
		Reviews:     86,
		Badge:       "Bestseller",
		Specs: SpecList{
			{Key: "Material", Value: "Oak"},
			{Key: "Upholstery", Value: "Wool blend"},
		},
	},
	{
		ID:              3,
		Name:            "Nimbus Bluetooth Speaker",
		Category:        "electronics",
		Price:           89.0,
		OriginalPrice:   price(119.0),
		Description:     "Compact speaker with 20 hours of playtime",
		FullDescription: "Compact fabric-wrapped speaker with 20 hours of playtime, IPX5 splash resistance and stereo pairing.",
		Image:           "https://images.pexels.com/photos/1279107/pexels-photo-1279107.jpeg",
		Rating:          4.2,
		Reviews:         342,
		Specs: SpecList{
			{Key: "Battery", Value: "20h"},
			{Key: "Connectivity", Value: "Bluetooth 5.2"},
			{Key: "Weight", Value: "680g"},
		},
	},
	{
		ID:          4,
		Name:        "Terra Ceramic Vase Set",
		Category:    "decor",
		Price:       54.5,
		Description: "Set of three hand-glazed stoneware vases",
		Image:       "https://images.pexels.com/photos/1248583/pexels-photo-1248583.jpeg",
		Rating:      4.0,
		Reviews:     41,
		Specs: SpecList{
			{Key: "Material", Value: "Stoneware"},
			{Key: "Pieces", Value: "3"},
		},
	},
}
