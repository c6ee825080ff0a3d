package main

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/locallibrary/catalog/pkg/loans"
	"github.com/locallibrary/catalog/pkg/models"
	"github.com/robinjoseph08/golib/logger"
)

func main() {
	log := logger.New()

	var opts struct {
		Today string `short:"t" long:"today" description:"The day to compute the window for, as YYYY-MM-DD (defaults to today)"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	today := models.DateOf(time.Now())
	if opts.Today != "" {
		today, err = models.ParseDate(opts.Today)
		if err != nil {
			log.Err(err).Fatal("today parse error")
		}
	}

	earliest, latest := loans.RenewalWindow(today)
	fmt.Printf("Today: %s\nProposed: %s\nWindow: %s to %s\n", today, loans.ProposedRenewalDate(today), earliest, latest)

	for _, raw := range args {
		date, err := loans.CleanRenewalDate(raw, today)
		if err != nil {
			fmt.Printf("%s: %s\n", raw, err)
			continue
		}
		fmt.Printf("%s: ok (%s)\n", raw, date)
	}
}
