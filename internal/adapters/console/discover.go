package console

import (
	"context"
	"fmt"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
)

// titleCase capitalizes each word and lowercases the rest, the way names
// are stored in the roster.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func (c *Console) discover(ctx context.Context, name string) error {
	c.printf("Okay %s let's help you get to know more about the players and teams!\n", name)
	c.println("What would you like to discover?\n1. Teams\n2. Players")
	choice, err := c.choose("Input the number corresponding to your choice. I want to know more about: ", "Please enter a valid choice", "1", "2")
	if err != nil {
		return err
	}
	if choice == "1" {
		return c.discoverTeams()
	}
	return c.discoverPlayers(ctx)
}

func (c *Console) discoverTeams() error {
	for {
		c.println("\n---------------------------------------------------")
		for _, t := range c.backend.Teams() {
			c.printf("%s. %s\n", t.ID, t.ShortName())
		}
		c.println("---------------------------------------------------")

		id, err := c.readLine("What is your favourite team? (Insert the corresponding number): ")
		if err != nil {
			return err
		}
		team, err := c.backend.Team(id)
		if err != nil {
			c.println("Invalid team selection. Please choose a valid team number.")
			continue
		}

		c.printf("\nTeam profile of %s:\n\n", team.Name)
		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Founded:\t%d\n", team.Founded)
		fmt.Fprintf(w, "Home City:\t%s\n", team.HomeCity)
		fmt.Fprintf(w, "Home Stadium:\t%s\n", team.HomeStadium)
		fmt.Fprintf(w, "Colors:\t%s\n", team.Colors)
		fmt.Fprintf(w, "Motto:\t%s\n", team.Motto)
		fmt.Fprintf(w, "Head Coach:\t%s\n", team.HeadCoach)
		_ = w.Flush()

		again, err := c.yesNo("\nWould you like to look up another team? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			c.println("\nThank you for using the team information tool!")
			return c.postSearch()
		}
	}
}

func (c *Console) discoverPlayers(ctx context.Context) error {
	c.println("\nGreat option! How would you like to know more about the NSL league players?")
	c.println("1. Search by player name or position (Goalkeeper, Defender, Midfielder, Forward)")
	c.println("2. Find a player from my favourite country")
	choice, err := c.choose("Input the number corresponding to your choice here: ", "\nThat's not a valid choice. Please enter 1 or 2.", "1", "2")
	if err != nil {
		return err
	}
	if choice == "1" {
		return c.searchByNameOrPosition(ctx)
	}
	return c.searchByCountry(ctx)
}

func (c *Console) searchByNameOrPosition(ctx context.Context) error {
	for {
		in, err := c.readLine("Enter the full player name or position: ")
		if err != nil {
			return err
		}
		query := titleCase(in)

		found, err := c.backend.FindPlayers(ctx, service.PlayerQuery{Name: query})
		if err != nil {
			return err
		}
		switch {
		case len(found) > 0:
			p := found[0]
			c.println(" | Player Profile |")
			c.println("==========================================================")
			c.printf("- Name: %s\n- Team: %s\n- Position: %s\n- Nationality: %s\n", p.Name, p.Team, p.Position, p.Nationality)
		default:
			found, err = c.backend.FindPlayers(ctx, service.PlayerQuery{Position: query})
			if err != nil {
				return err
			}
			if len(found) == 0 {
				c.println("\nSorry, that's not a valid player name or position.")
				continue
			}
			c.printf("\n| All Players with the position: %s |\n", query)
			c.println("==========================================================")
			c.writePlayers(found)
		}

		again, err := c.yesNo("\nWould you like to look up another player or position? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return c.postSearch()
		}
	}
}

func (c *Console) searchByCountry(ctx context.Context) error {
	counts, err := c.backend.NationalityCounts(ctx)
	if err != nil {
		return err
	}
	c.println("\nSpread of NSL Players by Country")
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNTRY\tPLAYERS")
	for _, nc := range counts {
		fmt.Fprintf(w, "%s\t%d\n", titleCase(nc.Country), nc.Count)
	}
	_ = w.Flush()

	for {
		in, err := c.readLine("Enter the full country name you are interested in: ")
		if err != nil {
			return err
		}
		found, err := c.backend.FindPlayers(ctx, service.PlayerQuery{Nationality: in})
		if err != nil {
			return err
		}
		if len(found) == 0 {
			c.printf("\nNo players found from '%s'. Please enter the full country name.\n", titleCase(in))
			continue
		}
		c.printf("\n| All Players from %s |\n", titleCase(in))
		c.println("==========================================================")
		c.writePlayers(found)

		again, err := c.yesNo("\nWould you like to search for another country? (yes/no): ")
		if err != nil {
			return err
		}
		if !again {
			return c.postSearch()
		}
	}
}

func (c *Console) writePlayers(ps []model.Player) {
	for _, p := range ps {
		c.printf("Name: %s, Team: %s\n", p.Name, p.Team)
	}
}
