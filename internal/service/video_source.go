package service

import (
	"context"
	"math/rand/v2"

	"github.com/MsRupa/vidlook-app/internal/model"
)

// VideoSource supplies trending videos for a region.
type VideoSource interface {
	Trending(ctx context.Context, region string, limit int) ([]model.Video, error)
}

// VideoSearcher is implemented by sources that can also search.
type VideoSearcher interface {
	Search(ctx context.Context, query, region string, limit int) ([]model.Video, error)
}

var curatedByRegion = map[string][]string{
	"US": {
		"e-ORhEE9VVg", "CevxZvSJLk8", "kJQP7kiw5Fk", "RgKAFK5djSk", "JGwWNGJdvx8",
		"fRh_vgS2dFE", "OPf0YbXqDm0", "hTWKbfoikeg", "pRpeEdMmmQ0", "60ItHLz5WEA",
		"YQHsXMglC9A", "PT2_F-1esPk", "LsoLEjrDogU", "bo_efYhYU2A", "SlPhMPnQ58k",
		"7PCkvCPvDXk", "hp8XYHL7Pr8", "DyDfgMOUjCI", "Lq_r06_vvBo", "lWA2pjMjpBs",
		"JkaxUblCGz0", "pSUydWEqKwE", "0KSOMA3QBU0", "NZKXkD6EgBk", "l_MyUGq7pgs",
	},
	"IN": {
		"vTIIMJ9tUc8", "l_MyUGq7pgs", "YR12Z8f1Dh8", "BddP6PYo2gs", "aJOTlE1K90k",
		"lWA2pjMjpBs", "cNw8A5pwbVI", "DnJqoYY4tDY", "5V430M59Yn8", "wDjeBNv6ip0",
		"7JJfJgyHYwU", "pAgnJDJN4VA", "OUMQ9J3nKQw", "vGJTaP6anOU", "LfWZz04-8FI",
		"kJQP7kiw5Fk", "RgKAFK5djSk", "fRh_vgS2dFE", "JGwWNGJdvx8", "e-ORhEE9VVg",
	},
	"BR": {
		"kXYiU_JCYtU", "dE9nItQbHmI", "yzTuBuRdAyA", "zEf423kYPrA", "hHW1oY26kxQ",
		"oRdxUFDoQe0", "vYCVq3h3PkY", "DHp9SnxYO6k", "niqrrmev4mA", "uG2yzY4MiYQ",
		"kJQP7kiw5Fk", "RgKAFK5djSk", "fRh_vgS2dFE", "JGwWNGJdvx8", "e-ORhEE9VVg",
	},
	"GB": {
		"fRh_vgS2dFE", "kJQP7kiw5Fk", "JGwWNGJdvx8", "RgKAFK5djSk", "e-ORhEE9VVg",
		"hT_nvWreIhg", "lp-EO5I60KA", "CevxZvSJLk8", "pRpeEdMmmQ0", "60ItHLz5WEA",
		"OPf0YbXqDm0", "YQHsXMglC9A", "PT2_F-1esPk", "LsoLEjrDogU", "bo_efYhYU2A",
	},
	"JP": {
		"MRIuJYk7xII", "65BAeDpwzGY", "FvOpPeKSf_4", "Lq_r06_vvBo", "bYR7rLM1AhM",
		"K_xTet06SUo", "rOU4YiuaxAM", "LIlZCmETvsY", "OdaGLvKhTwQ", "DQdV7N9pWAw",
		"kJQP7kiw5Fk", "RgKAFK5djSk", "fRh_vgS2dFE", "JGwWNGJdvx8", "e-ORhEE9VVg",
	},
	"KR": {
		"gdZLi9oWNZg", "XQSse3b2ge4", "gQlMMD8auMs", "wIgXX0PRKYU", "3HqEPkE-k4w",
		"CjRbTzj3jZk", "HYWocPF2TA0", "rygIYlPMazo", "QwJ9gMXKTXw", "kJQP7kiw5Fk",
		"RgKAFK5djSk", "fRh_vgS2dFE", "JGwWNGJdvx8", "e-ORhEE9VVg", "CevxZvSJLk8",
	},
	"DE": {
		"dQw4w9WgXcQ", "9bZkp7q19f0", "kJQP7kiw5Fk", "JGwWNGJdvx8", "RgKAFK5djSk",
		"fRh_vgS2dFE", "OPf0YbXqDm0", "hTWKbfoikeg", "CevxZvSJLk8", "pRpeEdMmmQ0",
	},
	"FR": {
		"dQw4w9WgXcQ", "9bZkp7q19f0", "kJQP7kiw5Fk", "JGwWNGJdvx8", "RgKAFK5djSk",
		"lWA2pjMjpBs", "OPf0YbXqDm0", "hTWKbfoikeg", "CevxZvSJLk8", "fRh_vgS2dFE",
	},
	"MX": {
		"kJQP7kiw5Fk", "RgKAFK5djSk", "JGwWNGJdvx8", "dQw4w9WgXcQ", "9bZkp7q19f0",
		"oRdxUFDoQe0", "yzTuBuRdAyA", "fRh_vgS2dFE", "OPf0YbXqDm0", "CevxZvSJLk8",
	},
}

var curatedDefault = []string{
	"dQw4w9WgXcQ", "9bZkp7q19f0", "JGwWNGJdvx8", "kJQP7kiw5Fk", "RgKAFK5djSk",
	"fRh_vgS2dFE", "OPf0YbXqDm0", "hTWKbfoikeg", "pRpeEdMmmQ0", "60ItHLz5WEA",
	"CevxZvSJLk8", "YQHsXMglC9A", "PT2_F-1esPk", "JRfuAukYTKg", "LsoLEjrDogU",
	"e-ORhEE9VVg", "bo_efYhYU2A", "SlPhMPnQ58k", "7PCkvCPvDXk", "hp8XYHL7Pr8",
}

// CuratedSource serves a fixed per-region list in shuffled order. It cannot
// search.
type CuratedSource struct {
	shuffle func([]string)
}

func NewCuratedSource() *CuratedSource {
	return &CuratedSource{shuffle: func(ids []string) {
		rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	}}
}

func (s *CuratedSource) Trending(_ context.Context, region string, limit int) ([]model.Video, error) {
	list, ok := curatedByRegion[region]
	if !ok {
		list = curatedDefault
	}
	ids := append([]string(nil), list...)
	s.shuffle(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	videos := make([]model.Video, len(ids))
	for i, id := range ids {
		videos[i] = model.Video{VideoID: id}
	}
	return videos, nil
}
