package riot

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

const (
	summonerPath = "/api/lol/na/summoner/v1.4/"
	dyrusJSON    = `{"id":5908,"name":"Dyrus","profileIconId":23,"summonerLevel":30,"revisionDate":1456}`
)

func TestPlayerByName(t *testing.T) {
	client, transport, _ := newTestClient(t, map[string]fakeResponse{
		summonerPath + "by-name/Dyrus": ok(`{"dyrus":` + dyrusJSON + `}`),
	})

	player, err := client.PlayerByName(context.Background(), "Dyrus", "")
	if err != nil {
		t.Fatalf("PlayerByName() error = %v", err)
	}
	if player.ID != 5908 || player.Name != "Dyrus" || player.ProfileIconID != 23 || player.Level != 30 {
		t.Fatalf("PlayerByName() = %+v", player)
	}
	if player.Region != "na" {
		t.Fatalf("player.Region = %q, want %q", player.Region, "na")
	}
	if !strings.Contains(string(player.Raw()), `"revisionDate":1456`) {
		t.Fatalf("player.Raw() = %s", player.Raw())
	}
	if got := transport.count(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
}

func TestPlayerByNameRegionOverride(t *testing.T) {
	client, transport, _ := newTestClient(t, map[string]fakeResponse{
		"/api/lol/euw/summoner/v1.4/by-name/xPeke": ok(`{"xpeke":{"id":1,"name":"xPeke"}}`),
	})

	player, err := client.PlayerByName(context.Background(), "xPeke", "EUW")
	if err != nil {
		t.Fatalf("PlayerByName() error = %v", err)
	}
	if player.Region != "euw" {
		t.Fatalf("player.Region = %q, want %q", player.Region, "euw")
	}
	if got := transport.requests[0].URL.Host; got != "euw.api.pvp.net" {
		t.Fatalf("request host = %q, want %q", got, "euw.api.pvp.net")
	}
}

func TestPlayersKeepPayloadOrder(t *testing.T) {
	client, transport, _ := newTestClient(t, map[string]fakeResponse{
		summonerPath + "5908,123,77": ok(`{
			"5908": {"id":5908,"name":"Dyrus"},
			"123":  {"id":123,"name":"Bjergsen"},
			"77":   {"id":77,"name":"Doublelift"}
		}`),
	})

	players, err := client.Players(context.Background(), []int64{5908, 123, 77}, "")
	if err != nil {
		t.Fatalf("Players() error = %v", err)
	}
	if got := transport.count(); got != 1 {
		t.Fatalf("requests = %d, want 1", got)
	}
	want := []string{"Dyrus", "Bjergsen", "Doublelift"}
	if len(players) != len(want) {
		t.Fatalf("len(Players()) = %d, want %d", len(players), len(want))
	}
	for i, name := range want {
		if players[i].Name != name {
			t.Fatalf("Players()[%d].Name = %q, want %q", i, players[i].Name, name)
		}
	}
}

func TestPlayersByNameSingleRequest(t *testing.T) {
	client, transport, _ := newTestClient(t, map[string]fakeResponse{
		summonerPath + "by-name/b,a": ok(`{"b":{"id":2,"name":"b"},"a":{"id":1,"name":"a"}}`),
	})

	players, err := client.PlayersByName(context.Background(), []string{"b", "a"}, "")
	if err != nil {
		t.Fatalf("PlayersByName() error = %v", err)
	}
	if len(players) != 2 || players[0].ID != 2 || players[1].ID != 1 {
		t.Fatalf("PlayersByName() = %+v", players)
	}
	if got := transport.urls()[0]; !strings.Contains(got, "/by-name/b,a?") {
		t.Fatalf("request url = %q, want comma joined names", got)
	}
}

func TestPlayerEmptyPayload(t *testing.T) {
	client, _, _ := newTestClient(t, map[string]fakeResponse{
		summonerPath + "1": ok(`{}`),
	})

	if _, err := client.Player(context.Background(), 1, ""); !errors.Is(err, ErrEmptyPayload) {
		t.Fatalf("Player() error = %v, want %v", err, ErrEmptyPayload)
	}
}

func TestDispatchDefaults(t *testing.T) {
	client, transport, _ := newTestClient(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"top champions default count", func() error {
			_, err := client.PlayerChampionMasteryTopChampions(ctx, 1, 0)
			return err
		}, "https://na.api.pvp.net/championmastery/location/NA1/player/1/topchampions?api_key=test-key&count=3"},
		{"top champions explicit count", func() error {
			_, err := client.PlayerChampionMasteryTopChampions(ctx, 1, 5)
			return err
		}, "https://na.api.pvp.net/championmastery/location/NA1/player/1/topchampions?api_key=test-key&count=5"},
		{"ranked stats default season", func() error {
			_, err := client.PlayerRankedStats(ctx, 1, "")
			return err
		}, "https://na.api.pvp.net/api/lol/na/stats/v1.3/by-summoner/1/ranked?api_key=test-key&season=SEASON2016"},
		{"stats summary season", func() error {
			_, err := client.PlayerStats(ctx, 1, "SEASON2015")
			return err
		}, "https://na.api.pvp.net/api/lol/na/stats/v1.3/by-summoner/1/summary?api_key=test-key&season=SEASON2015"},
		{"champion data default subset", func() error {
			_, err := client.ChampionData(ctx, 266, "")
			return err
		}, "https://global.api.pvp.net/api/lol/static-data/na/v1.2/champion/266?api_key=test-key&champData=all"},
		{"item data all", func() error {
			_, err := client.ItemDataAll(ctx, "gold")
			return err
		}, "https://global.api.pvp.net/api/lol/static-data/na/v1.2/item?api_key=test-key&itemData=gold"},
		{"summoner spell default subset", func() error {
			_, err := client.SummonerSpellData(ctx, 4, "")
			return err
		}, "https://global.api.pvp.net/api/lol/static-data/na/v1.2/summoner-spell/4?api_key=test-key&summonerSpellData=all"},
		{"match timeline", func() error {
			_, err := client.Match(ctx, 2034)
			return err
		}, "https://na.api.pvp.net/api/lol/na/match/v2.2/2034?api_key=test-key&includeTimeline=true"},
		{"free champions", func() error {
			_, err := client.ChampionsFreeList(ctx)
			return err
		}, "https://na.api.pvp.net/api/lol/na/champion/v1.2/champion?api_key=test-key&freeToPlay=true"},
		{"current game", func() error {
			_, err := client.PlayerCurrentGame(ctx, 1)
			return err
		}, "https://na.api.pvp.net/observer-mode/rest/NA1/consumer/getSpectatorGameInfo/NA1/1?api_key=test-key"},
		{"challenger without queue", func() error {
			_, err := client.LeagueChallenger(ctx, "")
			return err
		}, "https://na.api.pvp.net/api/lol/na/league/v2.5/challenger?api_key=test-key"},
		{"master with queue", func() error {
			_, err := client.LeagueMaster(ctx, "RANKED_SOLO_5x5")
			return err
		}, "https://na.api.pvp.net/api/lol/na/league/v2.5/master?api_key=test-key&type=RANKED_SOLO_5x5"},
		{"team league entry", func() error {
			_, err := client.TeamLeagueEntry(ctx, "TEAM-1")
			return err
		}, "https://na.api.pvp.net/api/lol/na/league/v2.5/by-team/TEAM-1/entry?api_key=test-key"},
		{"status region", func() error {
			_, err := client.StatusRegion(ctx, "euw")
			return err
		}, "http://status.leagueoflegends.com/shards/euw?api_key=test-key"},
		{"mastery pages", func() error {
			_, err := client.PlayerMasteryPages(ctx, 1)
			return err
		}, "https://na.api.pvp.net/api/lol/na/summoner/v1.4/1/masteries?api_key=test-key"},
		{"recent matches filters", func() error {
			_, err := client.PlayerRecentMatches(ctx, 1, url.Values{"beginIndex": {"0"}, "championIds": {""}})
			return err
		}, "https://na.api.pvp.net/api/lol/na/matchlist/v2.2/by-summoner/1?api_key=test-key&beginIndex=0"},
	}
	for _, tc := range tests {
		before := transport.count()
		// Unknown paths answer 404; only the request URL matters here.
		if err := tc.call(); !IsNotFound(err) {
			t.Fatalf("%s: error = %v, want 404", tc.name, err)
		}
		urls := transport.urls()
		if len(urls) != before+1 {
			t.Fatalf("%s: requests = %d, want %d", tc.name, len(urls), before+1)
		}
		if got := urls[before]; got != tc.want {
			t.Fatalf("%s: url = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestHTTPStatusErrorRedactsKey(t *testing.T) {
	client, _, logs := newTestClient(t, map[string]fakeResponse{
		summonerPath + "1": {status: http.StatusForbidden, body: `{"status":{"status_code":403}}`},
	})

	_, err := client.Player(context.Background(), 1, "")
	statusErr, ok := errors.AsType[*HTTPStatusError](err)
	if !ok {
		t.Fatalf("Player() error = %v, want *HTTPStatusError", err)
	}
	if statusErr.StatusCode != http.StatusForbidden {
		t.Fatalf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusForbidden)
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Fatalf("error leaks api key: %v", err)
	}
	if !strings.Contains(statusErr.URL, "api_key=REDACTED") {
		t.Fatalf("URL = %q, want redacted api_key", statusErr.URL)
	}
	if out := logs.String(); strings.Contains(out, testAPIKey) || !strings.Contains(out, "status=403") {
		t.Fatalf("logs = %q", out)
	}
}

func TestRawRoutingErrorSkipsTransport(t *testing.T) {
	client, transport, _ := newTestClient(t, nil)

	if _, err := client.Raw(context.Background(), "", nil, "", nil); !errors.Is(err, ErrFamilyRequired) {
		t.Fatalf("Raw() error = %v, want %v", err, ErrFamilyRequired)
	}
	if _, err := client.Raw(context.Background(), FamilySummoner, []string{"1"}, "jp", nil); !errors.Is(err, ErrUnknownRegion) {
		t.Fatalf("Raw() error = %v, want %v", err, ErrUnknownRegion)
	}
	if got := transport.count(); got != 0 {
		t.Fatalf("requests = %d, want 0", got)
	}
}

func TestRawDecodeError(t *testing.T) {
	client, _, _ := newTestClient(t, map[string]fakeResponse{
		"/shards": ok(`not json`),
	})

	if _, err := client.StatusAll(context.Background()); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("StatusAll() error = %v, want decode error", err)
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	client, err := New(testAPIKey, "na", WithDoer(doerFunc(func(*http.Request) (*http.Response, error) {
		return nil, &url.Error{Op: "Get", URL: "https://na.api.pvp.net/x?api_key=" + testAPIKey, Err: boom}
	})))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.FeaturedGames(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("FeaturedGames() error = %v, want %v", err, boom)
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Fatalf("error leaks api key: %v", err)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestRedactAPIKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://x/y?api_key=abc", "https://x/y?api_key=REDACTED"},
		{"https://x/y?api_key=abc&season=S", "https://x/y?api_key=REDACTED&season=S"},
		{"https://x/y?count=3", "https://x/y?count=3"},
	}
	for _, tc := range tests {
		if got := RedactAPIKey(tc.input); got != tc.want {
			t.Fatalf("RedactAPIKey(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
