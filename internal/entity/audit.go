package entity

import "github.com/namanrajpal/openchamber/internal/reconcile"

// audit records report. Audit failures are logged, never returned: the
// stores are already written.
func (s *Service) audit(r *Report) {
	if !s.Audit.Enabled() {
		return
	}

	paths := append(append([]string{}, r.Written...), r.Removed...)

	var err error
	switch r.Operation {
	case "create":
		err = s.Audit.LogCreate(r.Kind, r.Name, r.Scope.String(), paths)
	case "update":
		err = s.Audit.LogUpdate(r.Kind, r.Name, changeSummary(r.Changes), paths)
	case "delete":
		err = s.Audit.LogDelete(r.Kind, r.Name, r.Disabled, paths)
	}
	if err != nil {
		s.Logger.Warn().Err(err).Msg("failed to write audit entry")
	}
}

func changeSummary(changes []reconcile.Change) map[string]interface{} {
	out := make(map[string]interface{}, len(changes))
	for _, c := range changes {
		if c.Deleted {
			out[c.Field] = "deleted"
			continue
		}
		out[c.Field] = string(c.Target)
	}
	return out
}
