package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pessoas-api/backend/internal/domain"
)

// msgCreated is the body message of a successful create.
const msgCreated = "Pessoa criada com sucesso."

// CreatePersonResponse is the JSON body of a successful create.
type CreatePersonResponse struct {
	Message string `json:"message"`
}

// PersonResponse is the JSON representation of a Person.
// Tags encodes as null when the person has none.
type PersonResponse struct {
	ID        openapi_types.UUID `json:"id"`
	Nickname  string             `json:"apelido"`
	Name      string             `json:"nome"`
	BirthDate openapi_types.Date `json:"nascimento"`
	Tags      []string           `json:"stack"`
}

// CreatePerson handles POST /pessoas.
func (s *Server) CreatePerson(w http.ResponseWriter, r *http.Request) {
	in, err := decodePersonInput(r.Body)
	if err != nil {
		status, message := decodeFailure(err)
		writeError(w, r, status, message)
		return
	}

	created, err := s.people.Create(r.Context(), in)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, r, http.StatusUnprocessableEntity, verr.Message)
		case errors.Is(err, domain.ErrConflict):
			writeError(w, r, http.StatusUnprocessableEntity, msgConflict)
		default:
			// Any other write failure is still the client's 422; the
			// description comes from the store.
			slog.ErrorContext(r.Context(), "create person failed", "error", err)
			writeError(w, r, http.StatusUnprocessableEntity, rootCause(err).Error())
		}
		return
	}

	w.Header().Set("Location", "/pessoas/"+created.ID.String())
	writeJSON(w, r, http.StatusCreated, CreatePersonResponse{Message: msgCreated})
}

// GetPerson handles GET /pessoas/{id}.
// An id that is not a UUID cannot exist, so it is reported as not found.
func (s *Server) GetPerson(w http.ResponseWriter, r *http.Request) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, r, http.StatusNotFound, msgNotFound)
		return
	}

	p, err := s.people.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, msgNotFound)
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, personToResponse(p))
}

// SearchPersons handles GET /pessoas?t=term.
func (s *Server) SearchPersons(w http.ResponseWriter, r *http.Request) {
	// A repeated t uses its first value.
	term := r.URL.Query().Get("t")
	if term == "" {
		writeError(w, r, http.StatusBadRequest, msgMissingTerm)
		return
	}

	people, err := s.people.Search(r.Context(), term)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSearch) {
			writeError(w, r, http.StatusBadRequest, msgMissingTerm)
			return
		}
		writeInternal(w, r, err)
		return
	}

	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, personToResponse(p))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// CountPersons handles GET /contagem-pessoas. The body is a bare integer.
func (s *Server) CountPersons(w http.ResponseWriter, r *http.Request) {
	n, err := s.people.Count(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(strconv.FormatInt(n, 10)))
}

// --- mapping helpers --------------------------------------------------------

// personToResponse converts a domain.Person into its JSON shape.
func personToResponse(p domain.Person) PersonResponse {
	return PersonResponse{
		ID:        p.ID,
		Nickname:  p.Nickname,
		Name:      p.Name,
		BirthDate: openapi_types.Date{Time: p.BirthDate},
		Tags:      p.Tags,
	}
}

// decodePersonInput reads a create body. It fails only when the body is not
// a JSON object. A known key whose value has the wrong type is left unset and
// recorded in Malformed, so validation reports fields in their fixed order
// whatever the key order of the body. Absent and null keys stay nil.
func decodePersonInput(body io.Reader) (domain.PersonInput, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return domain.PersonInput{}, err
	}

	var in domain.PersonInput
	malformed := func(f domain.Field, message string) {
		if in.Malformed == nil {
			in.Malformed = make(map[domain.Field]string)
		}
		in.Malformed[f] = message
	}

	for _, f := range []struct {
		field   domain.Field
		dst     **string
		message string
	}{
		{domain.FieldNickname, &in.Nickname, domain.MsgInvalidNickname},
		{domain.FieldName, &in.Name, domain.MsgInvalidName},
		{domain.FieldBirthDate, &in.BirthDate, domain.MsgInvalidBirthDate},
	} {
		v, ok := raw[string(f.field)]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			*f.dst = nil
			malformed(f.field, f.message)
		}
	}

	if v, ok := raw[string(domain.FieldTags)]; ok {
		if err := json.Unmarshal(v, &in.Tags); err != nil {
			in.Tags = nil
			malformed(domain.FieldTags, tagsMessage(err))
		}
	}
	return in, nil
}

// tagsMessage distinguishes a stack that is not a list from a list holding
// something other than strings.
func tagsMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Type != nil && typeErr.Type.Kind() == reflect.Slice {
		return domain.MsgTagsNotList
	}
	return domain.MsgInvalidTags
}

// decodeFailure picks the status and message for a body that is not a JSON
// object: 413 past the size cap, 400 otherwise.
func decodeFailure(err error) (int, string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, MsgBodyTooLarge
	}
	return http.StatusBadRequest, msgInvalidBody
}
