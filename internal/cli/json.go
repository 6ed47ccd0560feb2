package cli

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"
)

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Warning represents a non-fatal warning.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count int `json:"count,omitempty"`
}

// errReported marks an error already written as a JSON envelope.
var errReported = errors.New("error reported")

func outputJSON(w io.Writer, resp Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

func (a *App) outputSuccess(cmd *cobra.Command, data interface{}, meta *Meta) {
	outputJSON(cmd.OutOrStdout(), Response{OK: true, Data: data, Meta: meta})
}

func (a *App) outputSuccessWithWarnings(cmd *cobra.Command, data interface{}, warnings []Warning, meta *Meta) {
	outputJSON(cmd.OutOrStdout(), Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

// handleError reports err. In JSON mode the envelope goes to stdout and
// cobra is told not to print the error again; the process still exits 1.
func (a *App) handleError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if !a.flags.JSON {
		return err
	}
	code, suggestion, details := classifyError(err)
	outputJSON(cmd.OutOrStdout(), Response{
		OK: false,
		Error: &ErrorInfo{
			Code:       code,
			Message:    err.Error(),
			Details:    details,
			Suggestion: suggestion,
		},
	})
	cmd.Root().SilenceErrors = true
	return errReported
}

// handleErrorMsg reports a usage problem with a fixed code.
func (a *App) handleErrorMsg(cmd *cobra.Command, code, message, suggestion string) error {
	if !a.flags.JSON {
		if suggestion != "" {
			return errors.New(message + "\n\n" + suggestion)
		}
		return errors.New(message)
	}
	outputJSON(cmd.OutOrStdout(), Response{
		OK:    false,
		Error: &ErrorInfo{Code: code, Message: message, Suggestion: suggestion},
	})
	cmd.Root().SilenceErrors = true
	return errReported
}
