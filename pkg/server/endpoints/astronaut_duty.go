package endpoints

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/acts/pkg/command"
	"github.com/doodlesbykumbi/acts/pkg/mediator"
	"github.com/doodlesbykumbi/acts/pkg/model"
	"github.com/doodlesbykumbi/acts/pkg/query"
	"github.com/doodlesbykumbi/acts/pkg/server"
	"github.com/doodlesbykumbi/acts/pkg/validate"
)

// AstronautDutyResponse is one entry of a duty history
type AstronautDutyResponse struct {
	ID            int64   `json:"id"`
	PersonID      int64   `json:"personId"`
	Rank          string  `json:"rank"`
	DutyTitle     string  `json:"dutyTitle"`
	DutyStartDate string  `json:"dutyStartDate"`
	DutyEndDate   *string `json:"dutyEndDate"`
}

// AstronautDutiesResponse is the data of GET /AstronautDuty/{name}
type AstronautDutiesResponse struct {
	Person          PersonResponse          `json:"person"`
	AstronautDuties []AstronautDutyResponse `json:"astronautDuties"`
}

// CreateAstronautDutyRequest is the body of POST /AstronautDuty
type CreateAstronautDutyRequest struct {
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	DutyTitle     string `json:"dutyTitle"`
	DutyStartDate string `json:"dutyStartDate"`
}

func (req CreateAstronautDutyRequest) command() (command.CreateAstronautDuty, error) {
	cmd := command.CreateAstronautDuty{
		Name:      req.Name,
		Rank:      req.Rank,
		DutyTitle: req.DutyTitle,
	}
	if req.DutyStartDate == "" {
		return cmd, nil
	}
	start, err := model.ParseDate(req.DutyStartDate)
	if err != nil {
		return cmd, validate.Errorf("dutyStartDate: %v", err)
	}
	cmd.DutyStartDate = start
	return cmd, nil
}

// RegisterAstronautDutyEndpoints registers the /AstronautDuty endpoints
func RegisterAstronautDutyEndpoints(s *server.Server) {
	s.API.HandleFunc("/AstronautDuty", handleCreateAstronautDuty(s.Mediator, s.Logger)).Methods("POST")
	s.API.HandleFunc("/AstronautDuty/{name}", handleGetAstronautDuties(s.Mediator, s.Logger)).Methods("GET")
}

func handleGetAstronautDuties(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := pathName(r)
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		res, err := mediator.Send[query.GetAstronautDutiesByName, *query.PersonDuties](r.Context(), m, query.GetAstronautDutiesByName{Name: name})
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		duties := make([]AstronautDutyResponse, 0, len(res.Duties))
		for _, d := range res.Duties {
			duties = append(duties, AstronautDutyResponse{
				ID:            d.ID,
				PersonID:      d.PersonID,
				Rank:          d.Rank,
				DutyTitle:     d.DutyTitle,
				DutyStartDate: d.DutyStartDate.Format(model.DateLayout),
				DutyEndDate:   model.FormatDate(d.DutyEndDate),
			})
		}
		respondOK(w, http.StatusOK, "Successful", AstronautDutiesResponse{
			Person:          newPersonResponse(res.Person),
			AstronautDuties: duties,
		})
	}
}

func handleCreateAstronautDuty(m *mediator.Mediator, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAstronautDutyRequest
		if err := decodeBody(r, &req); err != nil {
			handleError(log, w, r, err)
			return
		}
		cmd, err := req.command()
		if err != nil {
			handleError(log, w, r, err)
			return
		}

		id, err := mediator.Send[command.CreateAstronautDuty, int64](r.Context(), m, cmd)
		if err != nil {
			handleError(log, w, r, err)
			return
		}
		respondOK(w, http.StatusOK, "Successful", id)
	}
}
