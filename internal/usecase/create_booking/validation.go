package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/datekey"
)

func validateRequest(req *Request) (datekey.Key, error) {
	key, err := datekey.Parse(req.Date)
	if err != nil {
		return datekey.Key{}, fmt.Errorf("%w: validateRequest - invalid date %q: %v", ErrInvalidInput, req.Date, err)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return datekey.Key{}, fmt.Errorf("%w: validateRequest - partySize must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if len(req.Notes) > domain.MaxNotesLength {
		return datekey.Key{}, fmt.Errorf("%w: validateRequest - notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if email := strings.TrimSpace(req.CustomerEmail); email != "" && !strings.Contains(email, "@") {
		return datekey.Key{}, fmt.Errorf("%w: validateRequest - invalid customer email", ErrInvalidInput)
	}

	return key, nil
}
