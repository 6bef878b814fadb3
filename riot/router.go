package riot

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"
)

const apiKeyParam = "api_key"

var (
	ErrFamilyRequired = errors.New("resource family is required")
	ErrUnknownFamily  = errors.New("unknown resource family")
	ErrUnknownRegion  = errors.New("unknown region")
)

type UnknownRegionError struct {
	Region string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q", e.Region)
}

func (e *UnknownRegionError) Is(target error) bool {
	return target == ErrUnknownRegion
}

// Request is a fully resolved call: absolute URL without query, the query
// parameters (credential included) and whether the body is JSON.
type Request struct {
	Family string
	URL    string
	Query  url.Values
	JSON   bool
}

func (r Request) String() string {
	if len(r.Query) == 0 {
		return r.URL
	}
	return r.URL + "?" + r.Query.Encode()
}

// Router resolves a family, path segments, region and query parameters into
// a Request. It holds no mutable state.
type Router struct {
	settings Settings
}

func NewRouter(settings Settings) (*Router, error) {
	settings, err := settings.normalized()
	if err != nil {
		return nil, err
	}
	return &Router{settings: settings}, nil
}

// Settings returns a copy of the router's settings. Changing the returned
// tables does not affect routing.
func (r *Router) Settings() Settings {
	settings := r.settings
	settings.Versions = maps.Clone(r.settings.Versions)
	settings.Platforms = maps.Clone(r.settings.Platforms)
	return settings
}

// Route resolves one logical request. An empty region selects the home region.
// Parameters with no values or only empty-string values are left out of the
// query, so a caller-supplied "" never reaches the API.
func (r *Router) Route(family string, segments []string, region string, params url.Values) (Request, error) {
	family = strings.TrimSpace(family)
	if family == "" {
		return Request{}, ErrFamilyRequired
	}
	version, ok := r.settings.Versions[family]
	if !ok {
		return Request{}, fmt.Errorf("%w %q", ErrUnknownFamily, family)
	}

	region = strings.ToLower(strings.TrimSpace(region))
	if region == "" {
		region = r.settings.Region
	}
	path := joinSegments(segments)

	var endpoint string
	switch family {
	case FamilyChampionMastery:
		platform, err := r.platform(region)
		if err != nil {
			return Request{}, err
		}
		endpoint = fmt.Sprintf("https://%s.%s/championmastery/location/%s/%s", region, r.settings.APIDomain, platform, path)
	case FamilyCurrentGame, FamilyFeaturedGames:
		// Observer paths carry the platform in place of a version segment.
		platform, err := r.platform(region)
		if err != nil {
			return Request{}, err
		}
		endpoint = fmt.Sprintf("https://%s.%s/observer-mode/rest/%s/%s", region, r.settings.APIDomain, platform, path)
	case FamilyStaticData:
		if _, err := r.platform(region); err != nil {
			return Request{}, err
		}
		endpoint = fmt.Sprintf("https://%s/api/lol/static-data/%s/%s/%s", r.settings.GlobalHost, region, version, path)
	case FamilyStatus:
		endpoint = fmt.Sprintf("http://%s/%s", r.settings.StatusHost, path)
	default:
		if _, err := r.platform(region); err != nil {
			return Request{}, err
		}
		endpoint = fmt.Sprintf("https://%s.%s/api/lol/%s/%s/%s/%s", region, r.settings.APIDomain, region, family, version, path)
	}

	return Request{
		Family: family,
		URL:    endpoint,
		Query:  r.query(params),
		JSON:   true,
	}, nil
}

func (r *Router) platform(region string) (string, error) {
	platform, ok := r.settings.Platforms[region]
	if !ok || platform == "" {
		return "", &UnknownRegionError{Region: region}
	}
	return platform, nil
}

// query copies params, dropping absent values, and sets the credential last.
func (r *Router) query(params url.Values) url.Values {
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			if value != "" {
				query.Add(key, value)
			}
		}
	}
	query.Set(apiKeyParam, r.settings.APIKey)
	return query
}

// joinSegments escapes each segment for use in a path. Commas are kept
// literal since bulk lookups send comma-separated identifiers.
func joinSegments(segments []string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, strings.ReplaceAll(url.PathEscape(segment), "%2C", ","))
	}
	return strings.Join(escaped, "/")
}
