package models

// CommandResult is the device answer to POST /command.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
