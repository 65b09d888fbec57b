package endpoints

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/query"
	"github.com/doodlesbykumbi/acts/pkg/server"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// PersonResponse is a person with its current astronaut snapshot
type PersonResponse struct {
	PersonID         int64   `json:"personId"`
	Name             string  `json:"name"`
	CurrentRank      *string `json:"currentRank"`
	CurrentDutyTitle *string `json:"currentDutyTitle"`
	CareerStartDate  *string `json:"careerStartDate"`
	CareerEndDate    *string `json:"careerEndDate"`
}

func newPersonResponse(p model.PersonAstronaut) PersonResponse {
	return PersonResponse{
		PersonID:         p.PersonID,
		Name:             p.Name,
		CurrentRank:      p.CurrentRank,
		CurrentDutyTitle: p.CurrentDutyTitle,
		CareerStartDate:  model.FormatDate(p.CareerStartDate),
		CareerEndDate:    model.FormatDate(p.CareerEndDate),
	}
}

// UpdatePersonRequest is the body of PUT /Person/{name}. Omitted fields are
// left unchanged.
type UpdatePersonRequest struct {
	CurrentRank      *string `json:"currentRank"`
	CurrentDutyTitle *string `json:"currentDutyTitle"`
	CareerStartDate  *string `json:"careerStartDate"`
	CareerEndDate    *string `json:"careerEndDate"`
}

func (req UpdatePersonRequest) command(name string) (command.UpdatePerson, error) {
	cmd := command.UpdatePerson{
		Name:             name,
		CurrentRank:      req.CurrentRank,
		CurrentDutyTitle: req.CurrentDutyTitle,
	}
	var err error
	if cmd.CareerStartDate, err = optionalDate("careerStartDate", req.CareerStartDate); err != nil {
		return cmd, err
	}
	if cmd.CareerEndDate, err = optionalDate("careerEndDate", req.CareerEndDate); err != nil {
		return cmd, err
	}
	return cmd, nil
}

func optionalDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := model.ParseDate(*s)
	if err != nil {
		return nil, validate.Errorf("%s: %v", field, err)
	}
	return &t, nil
}

// RegisterPersonEndpoints registers the /Person endpoints
func RegisterPersonEndpoints(s *server.Server) {
	m := s.Mediator
	log := s.Logger

	s.API.HandleFunc("/Person", handleGetPeople(m, log)).Methods("GET")
	s.API.HandleFunc("/Person", handleCreatePerson(m, log)).Methods("POST")
	s.API.HandleFunc("/Person/{name}", handleGetPerson(m, log)).Methods("GET")
	s.API.HandleFunc("/Person/{name}", handleUpdatePerson(m, log)).Methods("PUT")
}

func handleGetPeople(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		people, err := mediator.Send[query.GetPeople, []model.PersonAstronaut](r.Context(), m, query.GetPeople{})
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		data := make([]PersonResponse, 0, len(people))
		for _, p := range people {
			data = append(data, newPersonResponse(p))
		}
		respondOK(w, http.StatusOK, "Successful", data)
	}
}

func handleGetPerson(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := pathName(r)
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		p, err := mediator.Send[query.GetPersonByName, *model.PersonAstronaut](r.Context(), m, query.GetPersonByName{Name: name})
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		// A missing person is a successful lookup with null data.
		var data *PersonResponse
		if p != nil {
			resp := newPersonResponse(*p)
			data = &resp
		}
		respondOK(w, http.StatusOK, "Successful", data)
	}
}

func handleCreatePerson(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := decodeName(r)
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		id, err := mediator.Send[command.CreatePerson, int64](r.Context(), m, command.CreatePerson{Name: name})
		if err != nil {
			handleError(log, w, r, err)
			return
		}
		respondOK(w, http.StatusOK, "Successful", id)
	}
}

// decodeName reads a POST /Person body. The body is a bare JSON string; an
// object with a "name" field is accepted too.
func decodeName(r *http.Request) (string, error) {
	var raw json.RawMessage
	if err := decodeBody(r, &raw); err != nil {
		return "", err
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", validate.Errorf("invalid request body: expected a JSON string")
	}
	return obj.Name, nil
}

func handleUpdatePerson(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := pathName(r)
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		var req UpdatePersonRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(log, w, r, err)
			return
		}
		cmd, err := req.command(name)
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		id, err := mediator.Send[command.UpdatePerson, int64](r.Context(), m, cmd)
		if err != nil {
			handleError(log, w, r, err)
			return
		}
		respondOK(w, http.StatusOK, "Successful", id)
	}
}
