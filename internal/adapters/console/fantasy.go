package console

import (
	"context"
	"errors"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
)

func (c *Console) fantasy(ctx context.Context, name string) error {
	c.printf("Okay %s let's help you start a Fantasy Team! First, let's log in or create an account\n", name)
	email, err := c.readLine("Enter your email address: ")
	if err != nil {
		return err
	}

	customer, found, err := c.backend.FindCustomer(ctx, email)
	if err != nil {
		return err
	}
	if found {
		ok, err := c.login(ctx, customer)
		if err != nil {
			return err
		}
		if !ok {
			return c.postSearch()
		}
	} else {
		customer, err = c.register(ctx, name, email)
		if err != nil {
			return err
		}
	}
	return c.build(ctx, customer)
}

// login gives the customer MaxPINAttempts tries.
func (c *Console) login(ctx context.Context, customer model.Customer) (bool, error) {
	for attempt := 1; attempt <= service.MaxPINAttempts; attempt++ {
		pin, err := c.secret(customer.Name + ", please enter your 4-digit pin to enter your account: ")
		if err != nil {
			return false, err
		}
		err = c.backend.VerifyPIN(ctx, customer, pin, attempt)
		if err == nil {
			c.printf("Welcome, %s!\n", customer.Name)
			return true, nil
		}
		if !errors.Is(err, service.ErrWrongPIN) {
			return false, err
		}
		if attempt < service.MaxPINAttempts {
			c.println("Invalid PIN. Please try again or contact customer service for assistance.")
		}
	}
	c.printf("You have reached the maximum number of attempts (%d) and are locked out. Please try again or contact customer service for assistance.\n", service.MaxPINAttempts)
	return false, nil
}

func (c *Console) register(ctx context.Context, name, email string) (model.Customer, error) {
	for {
		pin, err := c.secret(titleCase(name) + ", please enter a 4 digit pin to complete your registration: ")
		if err != nil {
			return model.Customer{}, err
		}
		if !service.ValidPIN(pin) {
			c.println("Invalid PIN. Please enter a 4 digit pin.")
			continue
		}
		customer, err := c.backend.Register(ctx, name, email, pin)
		if err != nil {
			return model.Customer{}, err
		}
		c.println("Your pin has been created. Thank you")
		return customer, nil
	}
}

// build runs the squad builder menu until the squad is finalized.
func (c *Console) build(ctx context.Context, customer model.Customer) error {
	c.println(builderBanner)
	sess, err := c.backend.NewSession(ctx, customer.ID)
	if err != nil {
		return err
	}
	if sess.Squad().IsEmpty() {
		c.println("\nLooks like you don't have a team yet, please create one")
	} else {
		c.println("\nCurrent Team:")
		c.writeSquad(sess.Squad())
	}

	for {
		c.printf("\nWhich position would you like to fill / modify?\n\n")
		for _, mc := range squad.MenuChoices {
			label := mc.Label()
			if mc == squad.ChooseFinish {
				label = "I'm happy with my team"
			}
			c.printf("%d. %s\n", mc, label)
		}
		in, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}
		out, err := sess.Choose(ctx, in)
		if errors.Is(err, squad.ErrInvalidChoice) {
			c.println("\nInvalid input. Please choose a number from 1 to 5.")
			continue
		}
		if out.Kind == squad.OutcomeFinalized {
			c.printf("\nTeam finalized:\n\n")
			c.writeSquad(sess.Squad())
			if err != nil {
				c.logger.Error(ctx, "squad not saved", logger.String("customer_id", customer.ID), logger.Error(err))
				c.printf("\nSorry, your team could not be saved: %v\n", err)
			}
			c.println()
			return c.postSearch()
		}
		if err != nil {
			return err
		}

		switch out.Kind {
		case squad.OutcomeEmptySquad:
			c.println("Looks like you don't have a team yet, please create one")
		case squad.OutcomeAwaitingQuality:
			if err := c.pickQualities(ctx, sess); err != nil {
				return err
			}
		}
	}
}

// pickQualities collects both picks for the selected position and reports
// the ranking.
func (c *Console) pickQualities(ctx context.Context, sess *squad.Session) error {
	p := sess.Position()
	pick := 1
	for {
		if pick == 1 {
			c.printf("\nWhat is the most desirable quality you would like your %ss to possess?\n", p)
		} else {
			c.printf("\nWhat is the other quality you would like your %ss to possess?\n", p)
		}
		for i, q := range sess.Qualities() {
			c.printf("%d. %s\n", i+1, q)
		}

		var out squad.Outcome
		for {
			in, err := c.readLine("\nEnter the number of your chosen quality: ")
			if err != nil {
				sess.Cancel()
				return err
			}
			out, err = sess.PickQuality(ctx, in)
			if errors.Is(err, squad.ErrInvalidQuality) {
				c.println("\nInvalid selection. Try again.")
				continue
			}
			if err != nil {
				return err
			}
			break
		}

		switch out.Kind {
		case squad.OutcomeAwaitingQuality:
			pick = out.Pick
			continue
		case squad.OutcomeNoMatch:
			c.printf("No matching players found for position %s with qualities: %s\n", out.Position, out.Descriptor)
		case squad.OutcomeAssigned:
			c.printf("\nTop %ss for %s:\n", out.Position, out.Descriptor)
			c.writeRanking(out.Ranked)
			c.println("\nCurrent Team:")
			c.writeSquad(sess.Squad())
		}
		return nil
	}
}

const builderBanner = `
  ===================================
          WELCOME TO TEAM BUILDER!
  ===================================

  It's time to create your dream squad.
  Your goal: choose the perfect lineup by selecting players
  for each position based on the attributes you value most.

  How it works:
  - Team size: 11 players total
  - Formation: 1 Goalkeeper, 4 Defenders, 3 Midfielders, 3 Forwards
  - Player attributes: Each player has unique strengths based on their stats.
  - Your role: Enter your top desired attributes, and we'll suggest
    players who match your preferences.`
