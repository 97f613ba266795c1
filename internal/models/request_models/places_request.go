package request_models

type PlacesQuery struct {
	Categories string `form:"categories"`
	Policy     string `form:"policy"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type GemsQuery struct {
	Categories string `form:"categories"`
	MinReviews int    `form:"min_reviews" binding:"omitempty,min=0"`
	MaxReviews int    `form:"max_reviews" binding:"omitempty,min=0"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

type TrapsQuery struct {
	Categories  string  `form:"categories"`
	MinPolarity float64 `form:"min_polarity"`
	MinReviews  int     `form:"min_reviews" binding:"omitempty,min=0"`
	MaxReviews  int     `form:"max_reviews" binding:"omitempty,min=0"`
}
