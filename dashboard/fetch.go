package dashboard

import (
	"context"
	"log"
)

// fetch performs a single fetch for a selection and hands the outcome to
// complete. A superseded fetch is not aborted; its result is dropped.
func (s *Store) fetch(seq uint64, location string) {
	defer s.fetchDone()

	ctx, cancel := context.WithTimeout(s.ctx, s.fetchTimeout)
	defer cancel()

	resp, err := s.source.FetchForecast(ctx, location)
	switch {
	case err != nil:
		log.Printf("Error fetching forecast for %s from %s: %v", location, s.source.Name(), err)
	case resp != nil:
		log.Printf("Fetched %d forecast samples for %s from %s", len(resp.List), location, s.source.Name())
	}

	s.complete(seq, resp, err)
}
