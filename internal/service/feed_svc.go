package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/internal/model"
)

const (
	DefaultRegion    = "US"
	DefaultFeedLimit = 10
	MaxFeedLimit     = 50

	trendingFetchSize = 40
	searchFetchSize   = 20
)

var regionRe = regexp.MustCompile(`^[A-Z]{2}$`)

type FeedService struct {
	source      VideoSource
	fallback    VideoSource
	cache       *CacheService
	sponsoredID string
}

// NewFeedService builds the feed over source. The curated list stands in
// whenever source fails or returns nothing.
func NewFeedService(source VideoSource, cache *CacheService, sponsoredID string) *FeedService {
	if cache == nil {
		cache = &CacheService{}
	}
	return &FeedService{
		source:      source,
		fallback:    NewCuratedSource(),
		cache:       cache,
		sponsoredID: sponsoredID,
	}
}

// NormalizeRegion upper-cases a two-letter region code, defaulting to US.
func NormalizeRegion(region string) string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if !regionRe.MatchString(region) {
		return DefaultRegion
	}
	return region
}

// NormalizeQuery lower-cases, trims and collapses internal whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// Feed returns one page of the regional trending list. Page 1 opens with the
// sponsored video.
func (s *FeedService) Feed(ctx context.Context, region string, page, limit int) (*model.FeedResponse, error) {
	region = NormalizeRegion(region)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	videos := s.trending(ctx, region)

	if page == 1 && s.sponsoredID != "" {
		all := make([]model.Video, 0, len(videos)+1)
		all = append(all, model.Video{VideoID: s.sponsoredID, IsSponsored: true})
		for _, v := range videos {
			if v.VideoID != s.sponsoredID {
				all = append(all, v)
			}
		}
		videos = all
	}

	start := (page - 1) * limit
	end := min(start+limit, len(videos))
	pageVideos := []model.Video{}
	if start < len(videos) {
		pageVideos = videos[start:end]
	}

	return &model.FeedResponse{
		Videos:  pageVideos,
		HasMore: start+limit < len(videos),
		Page:    page,
		Total:   len(videos),
		Region:  region,
	}, nil
}

func (s *FeedService) trending(ctx context.Context, region string) []model.Video {
	key := trendingKey(region)

	var cached []model.Video
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Str("region", region).Msg("feed: cache read failed")
	}
	if hit {
		return cached
	}

	videos, err := s.source.Trending(ctx, region, trendingFetchSize)
	if err != nil || len(videos) == 0 {
		if err != nil {
			log.Warn().Err(err).Str("region", region).Msg("feed: trending source failed, using curated list")
		}
		fallback, _ := s.fallback.Trending(ctx, region, trendingFetchSize)
		return fallback
	}

	if err := s.cache.SetJSON(ctx, key, videos, TrendingCacheTTL); err != nil {
		log.Warn().Err(err).Str("region", region).Msg("feed: cache write failed")
	}
	return videos
}

// Search runs a cached search when the configured source supports it.
func (s *FeedService) Search(ctx context.Context, query, region string) (*model.SearchResponse, error) {
	q := NormalizeQuery(query)
	if q == "" {
		return nil, model.ErrEmptyQuery
	}
	region = NormalizeRegion(region)

	searcher, ok := s.source.(VideoSearcher)
	if !ok {
		return nil, model.ErrSearchUnavailable
	}

	key := searchKey(q, region)
	var cached model.SearchResponse
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("search: cache read failed")
	}
	if hit {
		return &cached, nil
	}

	videos, err := searcher.Search(ctx, q, region, searchFetchSize)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []model.Video{}
	}

	resp := &model.SearchResponse{Query: q, Region: region, Videos: videos}
	if err := s.cache.SetJSON(ctx, key, resp, SearchCacheTTL); err != nil {
		log.Warn().Err(err).Msg("search: cache write failed")
	}
	return resp, nil
}
