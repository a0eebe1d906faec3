package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MsRupa/vidlook-app/internal/model"
)

const sponsoredID = "9WEQts7b8Pw"

type stubSource struct {
	videos   []model.Video
	err      error
	calls    int
	searched string
}

func (s *stubSource) Trending(_ context.Context, _ string, _ int) ([]model.Video, error) {
	s.calls++
	return s.videos, s.err
}

type stubSearcher struct {
	stubSource
}

func (s *stubSearcher) Search(_ context.Context, query, _ string, _ int) ([]model.Video, error) {
	s.searched = query
	return s.videos, s.err
}

func ids(n int) []model.Video {
	out := make([]model.Video, n)
	for i := range out {
		out[i] = model.Video{VideoID: string(rune('a'+i)) + "vid"}
	}
	return out
}

func TestNormalizeRegion(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", "US"},
		{"us", "US"},
		{" br ", "BR"},
		{"USA", "US"},
		{"1x", "US"},
	}
	for _, tt := range tests {
		if got := NormalizeRegion(tt.in); got != tt.want {
			t.Errorf("NormalizeRegion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeQuery(t *testing.T) {
	if got := NormalizeQuery("  Lo-Fi   HIP\thop "); got != "lo-fi hip hop" {
		t.Errorf("NormalizeQuery = %q", got)
	}
}

func TestFeed_SponsoredPinnedOnFirstPage(t *testing.T) {
	videos := append(ids(5), model.Video{VideoID: sponsoredID})
	svc := NewFeedService(&stubSource{videos: videos}, nil, sponsoredID)

	resp, err := svc.Feed(context.Background(), "us", 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Videos[0].VideoID != sponsoredID || !resp.Videos[0].IsSponsored {
		t.Errorf("first video = %+v, want sponsored", resp.Videos[0])
	}
	if resp.Total != 6 {
		t.Errorf("total = %d, want 6 (sponsored deduplicated)", resp.Total)
	}
	if !resp.HasMore || resp.Region != "US" || len(resp.Videos) != 3 {
		t.Errorf("resp = %+v", resp)
	}

	page2, _ := svc.Feed(context.Background(), "us", 2, 3)
	for _, v := range page2.Videos {
		if v.IsSponsored {
			t.Error("sponsored video should only be pinned on page 1")
		}
	}
}

func TestFeed_Paging(t *testing.T) {
	svc := NewFeedService(&stubSource{videos: ids(12)}, nil, "")

	tests := []struct {
		page, limit int
		wantLen     int
		wantMore    bool
	}{
		{1, 5, 5, true},
		{3, 5, 2, false},
		{4, 5, 0, false},
		{0, 0, 10, true},
		{1, 500, 12, false},
	}
	for _, tt := range tests {
		resp, err := svc.Feed(context.Background(), "", tt.page, tt.limit)
		if err != nil {
			t.Fatal(err)
		}
		if len(resp.Videos) != tt.wantLen || resp.HasMore != tt.wantMore {
			t.Errorf("page=%d limit=%d: got %d videos more=%v, want %d more=%v",
				tt.page, tt.limit, len(resp.Videos), resp.HasMore, tt.wantLen, tt.wantMore)
		}
		if resp.Videos == nil {
			t.Errorf("page=%d: videos must be an empty list, not null", tt.page)
		}
	}
}

func TestFeed_FallsBackToCurated(t *testing.T) {
	for name, src := range map[string]*stubSource{
		"error": {err: errors.New("quota exceeded")},
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewFeedService(src, nil, sponsoredID)
			resp, err := svc.Feed(context.Background(), "JP", 1, 50)
			if err != nil {
				t.Fatal(err)
			}
			// 15 curated JP ids plus the sponsored one.
			if resp.Total != 16 {
				t.Errorf("total = %d, want 16", resp.Total)
			}
		})
	}
}

func TestCuratedSource_UnknownRegionUsesDefault(t *testing.T) {
	src := &CuratedSource{shuffle: func([]string) {}}
	videos, _ := src.Trending(context.Background(), "ZZ", 5)
	if len(videos) != 5 || videos[0].VideoID != curatedDefault[0] {
		t.Errorf("videos = %+v", videos)
	}
}

func TestSearch(t *testing.T) {
	if _, err := NewFeedService(&stubSource{}, nil, "").Search(context.Background(), "cats", ""); !errors.Is(err, model.ErrSearchUnavailable) {
		t.Errorf("err = %v, want ErrSearchUnavailable", err)
	}

	src := &stubSearcher{stubSource{videos: ids(2)}}
	svc := NewFeedService(src, nil, "")

	if _, err := svc.Search(context.Background(), "   ", ""); !errors.Is(err, model.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}

	resp, err := svc.Search(context.Background(), "  Funny   CATS ", "gb")
	if err != nil {
		t.Fatal(err)
	}
	if src.searched != "funny cats" || resp.Query != "funny cats" || resp.Region != "GB" || len(resp.Videos) != 2 {
		t.Errorf("resp = %+v searched = %q", resp, src.searched)
	}
}
