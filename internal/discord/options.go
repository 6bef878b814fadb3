package discord

import (
	"strings"

	"github.com/bingbr/bard/riot"
	"github.com/bwmarrin/discordgo"
)

var regionNames = map[string]string{
	"br":   "Brazil",
	"eune": "Europe Nordic & East",
	"euw":  "Europe West",
	"kr":   "Korea",
	"lan":  "Latin America North",
	"las":  "Latin America South",
	"na":   "North America",
	"oce":  "Oceania",
	"ru":   "Russia",
	"tr":   "Turkey",
}

// RegionChoices lists every routable region; codes without a display name
// fall back to the upper-cased code.
func RegionChoices() []*discordgo.ApplicationCommandOptionChoice {
	codes := riot.Regions()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(codes))
	for _, code := range codes {
		name, ok := regionNames[code]
		if !ok {
			name = strings.ToUpper(code)
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: code})
	}
	return choices
}

func RegionOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "region",
		Description: "Select account region.",
		Choices:     RegionChoices(),
		Required:    required,
	}
}

var SummonerNameOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "name",
	Description: "Summoner name.",
	Required:    true,
	MinLength:   new(3),
	MaxLength:   16,
}

var ChampionNameOption = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionString,
	Name:        "name",
	Description: "Champion name, e.g. Lee Sin.",
	Required:    true,
	MinLength:   new(2),
	MaxLength:   24,
}

// OptionString returns the trimmed string value of the named option, or "".
func OptionString(i *discordgo.InteractionCreate, name string) string {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return ""
	}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt != nil && opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}
