// Package cli implements the interactive text front end: it resolves two
// place names and prints the straight-line distance and travel time.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"map-routing-service/internal/domain"
	"map-routing-service/internal/ports"

	"go.uber.org/zap"
)

// Prompter drives one interactive session over In/Out.
type Prompter struct {
	geocoder ports.Geocoder
	in       *bufio.Scanner
	out      io.Writer
	logger   *zap.Logger
}

func NewPrompter(g ports.Geocoder, in io.Reader, out io.Writer, logger *zap.Logger) *Prompter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prompter{geocoder: g, in: bufio.NewScanner(in), out: out, logger: logger}
}

// AskLocation prompts until label resolves. Failures are reported to the
// user and the prompt repeats; only end of input or ctx cancellation stop it.
func (p *Prompter) AskLocation(ctx context.Context, label string) (domain.Coordinates, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.Coordinates{}, err
		}

		fmt.Fprintf(p.out, "Enter the name of %s: ", label)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return domain.Coordinates{}, fmt.Errorf("read %s: %w", label, err)
			}
			return domain.Coordinates{}, fmt.Errorf("read %s: %w", label, io.ErrUnexpectedEOF)
		}
		name := p.in.Text()

		coords, found, err := p.geocoder.Geocode(ctx, name)
		if err != nil {
			p.logger.Warn("geocoding failed", zap.String("name", name), zap.Error(err))
		}
		if err == nil && found {
			return coords, nil
		}
		if err == nil {
			fmt.Fprintf(p.out, "Location '%s' not found.\n", name)
		}
		fmt.Fprintln(p.out, "Invalid location name. Please try again.")
	}
}

// Run executes the full session: welcome, two prompts, route details at
// the default car speed.
func (p *Prompter) Run(ctx context.Context) error {
	fmt.Fprintln(p.out, "Welcome to the Map Routing System")

	start, err := p.AskLocation(ctx, "Start Location")
	if err != nil {
		return err
	}
	end, err := p.AskLocation(ctx, "End Location")
	if err != nil {
		return err
	}

	distance := domain.GeodesicKm(start, end)
	hours := domain.CalculateTime(distance, domain.ModeCar.Speed()) / 60

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Route Details:")
	fmt.Fprintf(p.out, "Start Location: %s\n", start)
	fmt.Fprintf(p.out, "End Location: %s\n", end)
	fmt.Fprintf(p.out, "Distance: %.2f km\n", distance)
	fmt.Fprintf(p.out, "Estimated Time to Travel: %.2f hours\n", hours)
	return nil
}

// IsEOF reports whether err means the user closed input.
func IsEOF(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF)
}
