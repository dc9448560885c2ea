package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tripplanner/tripplanner-client/client"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		form      client.TripFormData
		inputPath string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a trip plan",
		Long: "Generate a trip plan. Fields come from --input (a JSON or YAML trip form) " +
			"and are overridden by any field flag given explicitly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			req, err := buildForm(cmd, inputPath, form)
			if err != nil {
				return err
			}

			log.Debug().
				Str("city", req.City).
				Str("start_date", req.StartDate).
				Str("end_date", req.EndDate).
				Int("travel_days", req.TravelDays).
				Msg("submitting trip plan")

			start := time.Now()
			resp, err := a.client.SubmitTripPlan(cmd.Context(), req)
			elapsed := time.Since(start)
			if err != nil {
				log.Error().Err(err).Str("city", req.City).Dur("elapsed", elapsed).Msg("trip plan failed")
				return err
			}

			log.Debug().Bool("success", resp.Success).Dur("elapsed", elapsed).Msg("trip plan completed")
			return render(cmd.OutOrStdout(), output, resp)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Trip form file (JSON or YAML)")
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "Output format: json or yaml")
	cmd.Flags().StringVar(&form.City, "city", "", "Destination city")
	cmd.Flags().StringVar(&form.StartDate, "start-date", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.EndDate, "end-date", "", "Last day, YYYY-MM-DD")
	cmd.Flags().IntVar(&form.TravelDays, "days", 0, "Number of travel days (derived from the dates when omitted)")
	cmd.Flags().StringVar(&form.Transportation, "transportation", "", "Local transportation preference")
	cmd.Flags().StringVar(&form.Accommodation, "accommodation", "", "Accommodation preference")
	cmd.Flags().StringSliceVar(&form.Preferences, "preference", nil, "Travel preference (repeatable)")
	cmd.Flags().StringVar(&form.FreeTextInput, "free-text", "", "Additional free-form requirements")
	cmd.Flags().StringVar(&form.StartCity, "start-city", "", "Departure city")
	cmd.Flags().StringVar(&form.ToTransportation, "to-transportation", "", "Transportation to the destination")

	return cmd
}

// buildForm merges the optional input file with explicitly set flags.
func buildForm(cmd *cobra.Command, inputPath string, flagForm client.TripFormData) (client.TripFormData, error) {
	var form client.TripFormData
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return form, fmt.Errorf("reading trip form: %w", err)
		}
		// YAML is a superset of JSON, so one decoder serves both.
		if err := yaml.Unmarshal(data, &form); err != nil {
			return form, fmt.Errorf("parsing trip form %s: %w", inputPath, err)
		}
	}

	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("city", &form.City, flagForm.City)
	set("start-date", &form.StartDate, flagForm.StartDate)
	set("end-date", &form.EndDate, flagForm.EndDate)
	set("transportation", &form.Transportation, flagForm.Transportation)
	set("accommodation", &form.Accommodation, flagForm.Accommodation)
	set("free-text", &form.FreeTextInput, flagForm.FreeTextInput)
	set("start-city", &form.StartCity, flagForm.StartCity)
	set("to-transportation", &form.ToTransportation, flagForm.ToTransportation)
	if flags.Changed("days") {
		form.TravelDays = flagForm.TravelDays
	}
	if flags.Changed("preference") {
		form.Preferences = flagForm.Preferences
	}
	if form.Preferences == nil {
		form.Preferences = []string{}
	}

	if form.TravelDays == 0 {
		form.TravelDays = daysBetween(form.StartDate, form.EndDate)
	}
	return form, nil
}

// daysBetween counts calendar days from start to end inclusive, or 0 when
// either date does not parse or end precedes start.
func daysBetween(start, end string) int {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return 0
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
