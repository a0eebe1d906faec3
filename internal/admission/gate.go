// Package admission implements the perimeter gate that runs before any
// route handler: automation signature filtering, origin checks, per-IP
// fixed-window rate limiting and escalating abuse blocks.
package admission

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MsRupa/vidlook-app/pkg/hash"
)

// Class is the route class a request is budgeted under.
type Class string

const (
	ClassAPI    Class = "api"
	ClassPage   Class = "page"
	ClassExempt Class = "exempt"
)

// Verdict is the gate's answer for a request.
type Verdict int

const (
	Allow Verdict = iota
	Reject
	// Substitute means the gate answered with static content in place of the
	// application. It is a success response, not a rejection.
	Substitute
)

// Rejection reasons, used as response codes and metric labels.
const (
	ReasonBotSignature   = "BOT_SIGNATURE"
	ReasonMissingAgent   = "MISSING_USER_AGENT"
	ReasonInvalidReferer = "INVALID_REFERER"
	ReasonOriginDenied   = "ORIGIN_DENIED"
	ReasonMissingOrigin  = "MISSING_ORIGIN"
	ReasonDesktopAPI     = "DESKTOP_CLIENT"
	ReasonDesktopPage    = "DESKTOP_PAGE"
	ReasonRateLimited    = "RATE_LIMITED"
	ReasonAbuseBlocked   = "ABUSE_BLOCKED"
)

const (
	minUserAgentLen = 10

	// Retry hints advertised to clients.
	RateLimitRetryAfter = 60 * time.Second
	BlockedRetryAfter   = time.Hour
)

var (
	botSignatureRe = regexp.MustCompile(`(?i)bot|crawl|spider|scrape|lighthouse|headless|phantom|selenium|puppeteer|` +
		`wget|curl/|python-requests|axios/|node-fetch|go-http|java/|okhttp|httpclient|libwww|httpunit|nutch|` +
		`biglotron|teoma|convera|gigablast|ia_archiver|webmon|httrack|grub|netresearchserver|speedy|fluffy|` +
		`findlink|panscient|ips-agent|yanga|cyberpatrol|postman|insomnia|aiohttp|httpx|scrapy|mechanize|` +
		`request/|fetch/`)
	desktopOSRe   = regexp.MustCompile(`Windows NT|Macintosh|X11`)
	mobileMarkRe  = regexp.MustCompile(`Mobile|Android|wv\)`)
	mobileShellRe = regexp.MustCompile(`(?i)mobile|android|iphone|ipad|wv\)|worldapp`)
)

// Config is the gate's policy.
type Config struct {
	AllowedOrigins []string
	// LenientOrigin admits api requests with neither Origin nor Referer when
	// the user agent looks like the mobile shell. Strict mode rejects them.
	LenientOrigin   bool
	BlockDesktopAPI bool

	APILimit  int
	PageLimit int
	Window    time.Duration

	AbuseThreshold int
	BlockDuration  time.Duration
	SweepInterval  time.Duration
}

// DefaultConfig returns the production policy.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{
			"https://vidlook.app",
			"https://www.vidlook.app",
			"http://localhost:3000",
			"http://localhost:3001",
		},
		BlockDesktopAPI: true,
		APILimit:        30,
		PageLimit:       15,
		Window:          time.Minute,
		AbuseThreshold:  3,
		BlockDuration:   time.Hour,
		SweepInterval:   5 * time.Minute,
	}
}

// Request is the metadata the gate decides on.
type Request struct {
	IP        string
	UserAgent string
	Path      string
	Origin    string
	Referer   string
}

// Decision is the gate's verdict plus what the transport needs to render it.
type Decision struct {
	Verdict    Verdict
	Class      Class
	Status     int
	Reason     string
	Message    string
	RetryAfter time.Duration

	// Rate window state, set once the request reached the limiter.
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Gate decides whether a request may reach the application.
type Gate struct {
	cfg   Config
	store Store
	now   func() time.Time

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// Option customises a Gate.
type Option func(*Gate)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

func New(cfg Config, store Store, opts ...Option) *Gate {
	g := &Gate{cfg: cfg, store: store, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	g.lastSweep = g.now()
	return g
}

// Classify maps a request path to its route class.
func Classify(path string) Class {
	switch {
	case path == "" || path == "/":
		return ClassPage
	case path == "/api" || strings.HasPrefix(path, "/api/"):
		return ClassAPI
	default:
		return ClassExempt
	}
}

// IsDesktop reports whether ua is a desktop OS without mobile or webview markers.
func IsDesktop(ua string) bool {
	if ua == "" {
		return false
	}
	return desktopOSRe.MatchString(ua) && !mobileMarkRe.MatchString(ua)
}

// Admit runs the gate pipeline, stopping at the first rejection.
func (g *Gate) Admit(ctx context.Context, r Request) Decision {
	class := Classify(r.Path)
	if class == ClassExempt {
		return Decision{Verdict: Allow, Class: class, Status: http.StatusOK}
	}

	ua := r.UserAgent
	if botSignatureRe.MatchString(ua) {
		return reject(class, http.StatusForbidden, ReasonBotSignature, "Not allowed")
	}
	if len(strings.TrimSpace(ua)) < minUserAgentLen {
		return reject(class, http.StatusForbidden, ReasonMissingAgent, "Not allowed")
	}

	now := g.now()
	g.maybeSweep(ctx, now)

	switch class {
	case ClassAPI:
		if d, ok := g.checkOrigin(r); !ok {
			return d
		}
		if g.cfg.BlockDesktopAPI && IsDesktop(ua) {
			return reject(class, http.StatusForbidden, ReasonDesktopAPI, "Access denied")
		}
	case ClassPage:
		if IsDesktop(ua) {
			return Decision{
				Verdict: Substitute,
				Class:   class,
				Status:  http.StatusOK,
				Reason:  ReasonDesktopPage,
			}
		}
	}

	return g.limit(ctx, class, clientKey(r.IP), now)
}

func (g *Gate) checkOrigin(r Request) (Decision, bool) {
	// A referer pointing at the API itself means the request did not come
	// from the app page.
	if strings.Contains(r.Referer, "/api/") {
		return reject(ClassAPI, http.StatusForbidden, ReasonInvalidReferer, "Invalid request"), false
	}

	if r.Origin != "" || r.Referer != "" {
		if !g.originAllowed(r.Origin, r.Referer) {
			return reject(ClassAPI, http.StatusForbidden, ReasonOriginDenied, "Access denied"), false
		}
		return Decision{}, true
	}

	if g.cfg.LenientOrigin && mobileShellRe.MatchString(r.UserAgent) {
		return Decision{}, true
	}
	return reject(ClassAPI, http.StatusForbidden, ReasonMissingOrigin, "Access denied"), false
}

func (g *Gate) originAllowed(origin, referer string) bool {
	for _, allowed := range g.cfg.AllowedOrigins {
		if origin == allowed || (referer != "" && strings.HasPrefix(referer, allowed)) {
			return true
		}
	}
	return false
}

func (g *Gate) limit(ctx context.Context, class Class, ip string, now time.Time) Decision {
	budget := g.cfg.APILimit
	if class == ClassPage {
		budget = g.cfg.PageLimit
	}

	blockedUntil, err := g.store.BlockedUntil(ctx, ip, now)
	if err != nil {
		log.Warn().Err(err).Str("class", string(class)).Msg("admission: store unavailable, admitting")
		return Decision{Verdict: Allow, Class: class, Status: http.StatusOK, Limit: budget, Remaining: budget}
	}
	if blockedUntil.After(now) {
		d := reject(class, http.StatusTooManyRequests, ReasonAbuseBlocked, "IP temporarily blocked due to abuse.")
		d.RetryAfter = BlockedRetryAfter
		d.Limit = budget
		d.ResetAt = blockedUntil
		return d
	}

	w, err := g.store.Hit(ctx, string(class)+":"+ip, now, g.cfg.Window)
	if err != nil {
		log.Warn().Err(err).Str("class", string(class)).Msg("admission: store unavailable, admitting")
		return Decision{Verdict: Allow, Class: class, Status: http.StatusOK, Limit: budget, Remaining: budget}
	}
	resetAt := w.Start.Add(g.cfg.Window)

	if w.Count > budget {
		rec, err := g.store.RecordViolation(ctx, ip, now, AbusePolicy{
			Threshold: g.cfg.AbuseThreshold,
			Block:     g.cfg.BlockDuration,
			Cooldown:  g.cfg.BlockDuration,
		})
		if err != nil {
			log.Warn().Err(err).Msg("admission: failed to record violation")
		} else if rec.Violations == g.cfg.AbuseThreshold {
			log.Warn().
				Str("ip_hash", hash.ShortHex(ip, 12)).
				Int("violations", rec.Violations).
				Time("blocked_until", rec.BlockedUntil).
				Msg("admission: ip blocked for abuse")
		}

		d := reject(class, http.StatusTooManyRequests, ReasonRateLimited, "Too many requests. Please slow down.")
		d.RetryAfter = RateLimitRetryAfter
		d.Limit = budget
		d.ResetAt = resetAt
		return d
	}

	return Decision{
		Verdict:   Allow,
		Class:     class,
		Status:    http.StatusOK,
		Limit:     budget,
		Remaining: budget - w.Count,
		ResetAt:   resetAt,
	}
}

// maybeSweep purges stale state at most once per sweep interval. It piggybacks
// on request traffic instead of running a timer.
func (g *Gate) maybeSweep(ctx context.Context, now time.Time) {
	g.sweepMu.Lock()
	if now.Sub(g.lastSweep) <= g.cfg.SweepInterval {
		g.sweepMu.Unlock()
		return
	}
	g.lastSweep = now
	g.sweepMu.Unlock()

	if err := g.store.Sweep(ctx, now, 2*g.cfg.Window, g.cfg.BlockDuration); err != nil {
		log.Warn().Err(err).Msg("admission: sweep failed")
	}
}

func reject(class Class, status int, reason, message string) Decision {
	return Decision{
		Verdict: Reject,
		Class:   class,
		Status:  status,
		Reason:  reason,
		Message: message,
	}
}

func clientKey(ip string) string {
	if ip == "" {
		return "unknown"
	}
	return ip
}
