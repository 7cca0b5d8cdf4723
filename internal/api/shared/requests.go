package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/phrazzld/attendance-api/internal/domain"
)

// DecodeJSON decodes the request body into v. Any decoding failure is
// reported as domain.ErrInvalidFormat.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", domain.ErrInvalidFormat)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return nil
}
