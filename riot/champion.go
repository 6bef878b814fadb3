package riot

import (
	"context"
	"encoding/json"
	"fmt"
)

// Champion is a static data champion. Key is the string identifier used in
// asset paths ("MonkeyKing"), ID the numeric one.
type Champion struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
	Title string `json:"title"`

	raw    json.RawMessage
	client *Client
}

type Image struct {
	Full   string `json:"full"`
	Sprite string `json:"sprite"`
	Group  string `json:"group"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
}

type Spell struct {
	Key                  string    `json:"key"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	SanitizedDescription string    `json:"sanitizedDescription"`
	Tooltip              string    `json:"tooltip"`
	MaxRank              int       `json:"maxrank"`
	Cooldown             []float64 `json:"cooldown"`
	CooldownBurn         string    `json:"cooldownBurn"`
	CostBurn             string    `json:"costBurn"`
	RangeBurn            string    `json:"rangeBurn"`
	Image                Image     `json:"image"`
}

type Passive struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	SanitizedDescription string `json:"sanitizedDescription"`
	Image                Image  `json:"image"`
}

type ChampionInfo struct {
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Magic      int `json:"magic"`
	Difficulty int `json:"difficulty"`
}

type SpellSlot int

const (
	SlotQ SpellSlot = iota
	SlotW
	SlotE
	SlotR
)

func (s SpellSlot) String() string {
	switch s {
	case SlotQ:
		return "Q"
	case SlotW:
		return "W"
	case SlotE:
		return "E"
	case SlotR:
		return "R"
	default:
		return fmt.Sprintf("SpellSlot(%d)", int(s))
	}
}

type SpellSlotError struct {
	Slot  SpellSlot
	Count int
}

func (e *SpellSlotError) Error() string {
	return fmt.Sprintf("spell slot %s out of range: champion has %d spells", e.Slot, e.Count)
}

func newChampion(client *Client, raw json.RawMessage) (*Champion, error) {
	champion := &Champion{}
	if err := json.Unmarshal(raw, champion); err != nil {
		return nil, fmt.Errorf("decode champion: %w", err)
	}
	champion.raw = raw
	champion.client = client
	return champion, nil
}

func (ch *Champion) Raw() json.RawMessage {
	return ch.raw
}

// championField fetches one champData subset and decodes the member of the
// same name.
func championField[T any](ctx context.Context, ch *Champion, subset string) (T, error) {
	var out T
	raw, err := ch.client.ChampionData(ctx, ch.ID, subset)
	if err != nil {
		return out, fmt.Errorf("fetch champion %s: %w", subset, err)
	}
	value, err := field(raw, subset)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(value, &out); err != nil {
		return out, fmt.Errorf("decode champion %s: %w", subset, err)
	}
	return out, nil
}

func (ch *Champion) Spells(ctx context.Context) ([]Spell, error) {
	return championField[[]Spell](ctx, ch, "spells")
}

func (ch *Champion) Passive(ctx context.Context) (Passive, error) {
	return championField[Passive](ctx, ch, "passive")
}

func (ch *Champion) Spell(ctx context.Context, slot SpellSlot) (Spell, error) {
	spells, err := ch.Spells(ctx)
	if err != nil {
		return Spell{}, err
	}
	if slot < 0 || int(slot) >= len(spells) {
		return Spell{}, &SpellSlotError{Slot: slot, Count: len(spells)}
	}
	return spells[slot], nil
}

func (ch *Champion) SpellQ(ctx context.Context) (Spell, error) { return ch.Spell(ctx, SlotQ) }
func (ch *Champion) SpellW(ctx context.Context) (Spell, error) { return ch.Spell(ctx, SlotW) }
func (ch *Champion) SpellE(ctx context.Context) (Spell, error) { return ch.Spell(ctx, SlotE) }
func (ch *Champion) SpellR(ctx context.Context) (Spell, error) { return ch.Spell(ctx, SlotR) }

// Ultimate is the R spell.
func (ch *Champion) Ultimate(ctx context.Context) (Spell, error) { return ch.Spell(ctx, SlotR) }

func (ch *Champion) SquareURL() string {
	return ch.client.ChampionSquareURL(ch.Key)
}

// SplashURL returns the splash art of skin number skinNum; 0 is the default skin.
func (ch *Champion) SplashURL(skinNum int) string {
	return ch.client.ChampionSplashURL(ch.Key, skinNum)
}

func (ch *Champion) LoadingScreenURL(skinNum int) string {
	return ch.client.ChampionLoadingScreenURL(ch.Key, skinNum)
}

func (ch *Champion) PassiveIconURL(ctx context.Context) (string, error) {
	passive, err := ch.Passive(ctx)
	if err != nil {
		return "", err
	}
	return ch.client.PassiveImageURL(passive.Image.Full), nil
}

func (ch *Champion) PassiveSpriteURL(ctx context.Context) (string, error) {
	passive, err := ch.Passive(ctx)
	if err != nil {
		return "", err
	}
	return ch.client.PassiveImageURL(passive.Image.Sprite), nil
}

func (ch *Champion) SpellIconURL(ctx context.Context, slot SpellSlot) (string, error) {
	spell, err := ch.Spell(ctx, slot)
	if err != nil {
		return "", err
	}
	return ch.client.SpellImageURL(spell.Image.Full), nil
}

func (ch *Champion) SpellSpriteURL(ctx context.Context, slot SpellSlot) (string, error) {
	spell, err := ch.Spell(ctx, slot)
	if err != nil {
		return "", err
	}
	return ch.client.SpellImageURL(spell.Image.Sprite), nil
}

func (ch *Champion) UltimateIconURL(ctx context.Context) (string, error) {
	return ch.SpellIconURL(ctx, SlotR)
}

func (ch *Champion) UltimateSpriteURL(ctx context.Context) (string, error) {
	return ch.SpellSpriteURL(ctx, SlotR)
}

func (ch *Champion) AllyTips(ctx context.Context) ([]string, error) {
	return championField[[]string](ctx, ch, "allytips")
}

func (ch *Champion) Blurb(ctx context.Context) (string, error) {
	return championField[string](ctx, ch, "blurb")
}

func (ch *Champion) EnemyTips(ctx context.Context) ([]string, error) {
	return championField[[]string](ctx, ch, "enemytips")
}

func (ch *Champion) Info(ctx context.Context) (ChampionInfo, error) {
	return championField[ChampionInfo](ctx, ch, "info")
}

func (ch *Champion) Lore(ctx context.Context) (string, error) {
	return championField[string](ctx, ch, "lore")
}

// Recommended returns the recommended item blocks as sent by the API.
func (ch *Champion) Recommended(ctx context.Context) (json.RawMessage, error) {
	return championField[json.RawMessage](ctx, ch, "recommended")
}

func (ch *Champion) Stats(ctx context.Context) (map[string]float64, error) {
	return championField[map[string]float64](ctx, ch, "stats")
}

func (ch *Champion) Tags(ctx context.Context) ([]string, error) {
	return championField[[]string](ctx, ch, "tags")
}

func (ch *Champion) Skins(ctx context.Context) ([]*Skin, error) {
	entries, err := championField[[]json.RawMessage](ctx, ch, "skins")
	if err != nil {
		return nil, err
	}
	skins := make([]*Skin, 0, len(entries))
	for _, entry := range entries {
		skin := &Skin{}
		if err := json.Unmarshal(entry, skin); err != nil {
			return nil, fmt.Errorf("decode skin: %w", err)
		}
		skin.raw = entry
		skin.champion = ch
		skins = append(skins, skin)
	}
	return skins, nil
}

// Skin belongs to the champion it was listed from; its art URLs use that
// champion's key and the skin number.
type Skin struct {
	ID   int    `json:"id"`
	Num  int    `json:"num"`
	Name string `json:"name"`

	raw      json.RawMessage
	champion *Champion
}

func (s *Skin) Raw() json.RawMessage {
	return s.raw
}

func (s *Skin) Champion() *Champion {
	return s.champion
}

func (s *Skin) SplashURL() string {
	return s.champion.SplashURL(s.Num)
}

func (s *Skin) LoadingScreenURL() string {
	return s.champion.LoadingScreenURL(s.Num)
}
