package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/locallibrary/catalog/pkg/config"
	"github.com/locallibrary/catalog/pkg/database"
	"github.com/locallibrary/catalog/pkg/instances"
	"github.com/locallibrary/catalog/pkg/migrations"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/locallibrary/catalog/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	defer db.Close()

	app := &cli.App{
		Name:  "catalogctl",
		Usage: "administer the library catalog",
		Before: func(c *cli.Context) error {
			_, err := migrations.BringUpToDate(c.Context, db)
			return err
		},
		Commands: []*cli.Command{
			{
				Name:      "create-user",
				Usage:     "create a user, prompting for the password",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "role",
						Value: models.RoleMember,
						Usage: "librarian or member",
					},
				},
				Action: func(c *cli.Context) error {
					return createUser(c, db)
				},
			},
			{
				Name:  "overdue",
				Usage: "list loans that are past due",
				Action: func(c *cli.Context) error {
					return listOverdue(c, db)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("catalogctl error")
	}
}

func createUser(c *cli.Context, db *bun.DB) error {
	username := strings.TrimSpace(c.Args().First())
	if username == "" {
		return errors.New("a username is required")
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	user, err := users.NewService(db).Create(c.Context, users.CreateUserOptions{
		Username: username,
		Password: password,
		Role:     c.String("role"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %s %q (id %d)\n", c.String("role"), user.Username, user.ID)
	return nil
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return strings.TrimSpace(string(b)), nil
}

func listOverdue(c *cli.Context, db *bun.DB) error {
	today := models.DateOf(time.Now())
	onLoan := models.InstanceStatusOnLoan

	overdue, err := instances.NewService(db).ListInstances(c.Context, instances.ListInstancesOptions{
		Status:    &onLoan,
		DueBefore: &today,
	})
	if err != nil {
		return err
	}

	if len(overdue) == 0 {
		fmt.Println("No overdue loans")
		return nil
	}

	for _, instance := range overdue {
		title := ""
		if instance.Book != nil {
			title = instance.Book.Title
		}
		borrower := "-"
		if instance.Borrower != nil {
			borrower = instance.Borrower.Username
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", instance.DueBack, instance.ID, borrower, title)
	}
	return nil
}
