package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tripplanner/tripplanner-client/client"
)

func newHealthCmd(a *app) *cobra.Command {
	var (
		wait        bool
		waitTimeout time.Duration
		output      string
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend health",
		Long: "Check backend health. With --wait the check is repeated with exponential " +
			"backoff until the backend answers or --wait-timeout elapses; each attempt " +
			"is a separate request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}

			var (
				body any
				err  error
			)
			if wait {
				body, err = waitHealthy(cmd.Context(), a.client, waitTimeout)
			} else {
				body, err = a.client.CheckHealth(cmd.Context())
			}
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, body)
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the backend is healthy")
	cmd.Flags().DurationVar(&waitTimeout, "wait-timeout", time.Minute, "Give up waiting after this long")
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "Output format: json or yaml")

	return cmd
}

// waitHealthy polls CheckHealth until it succeeds. Client errors other than
// 5xx stop the loop immediately since repeating them cannot help.
func waitHealthy(ctx context.Context, c *client.Client, timeout time.Duration) (any, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("wait timeout must be > 0")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	exp.MaxElapsedTime = timeout
	exp.Reset()

	var (
		body    any
		lastErr error
	)
	attempts := 0
	op := func() error {
		attempts++
		var err error
		body, err = c.CheckHealth(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() == nil {
			lastErr = err
		}
		if status := client.StatusCode(err); status != 0 && status < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if errors.Is(err, client.ErrRequestSetup) || errors.Is(err, client.ErrUnknown) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Int("attempt", attempts).Dur("next_in", next).Msg("backend not healthy yet")
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(exp, ctx), notify); err != nil {
		// Report the backend's last answer rather than our own deadline.
		if ctx.Err() != nil && lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	log.Debug().Int("attempts", attempts).Msg("backend healthy")
	return body, nil
}
