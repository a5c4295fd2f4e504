package application

import (
	"github.com/railbook/railbook/pkg/domain"
)

// RegisterPassengerData carries the input for registering a passenger.
type RegisterPassengerData struct {
	Name string `json:"name"`
}

type registerPassengerCommand struct {
	data RegisterPassengerData
}

func (c registerPassengerCommand) CommandName() string            { return "RegisterPassenger" }
func (c registerPassengerCommand) Payload() RegisterPassengerData { return c.data }

func NewRegisterPassengerCommand(data RegisterPassengerData) domain.Command[RegisterPassengerData] {
	return registerPassengerCommand{data: data}
}

// ChangePassengerNameData carries the input for renaming a passenger.
type ChangePassengerNameData struct {
	PassengerID int    `json:"passengerId"`
	Name        string `json:"name"`
}

type changePassengerNameCommand struct {
	data ChangePassengerNameData
}

func (c changePassengerNameCommand) CommandName() string              { return "ChangePassengerName" }
func (c changePassengerNameCommand) Payload() ChangePassengerNameData { return c.data }

func NewChangePassengerNameCommand(data ChangePassengerNameData) domain.Command[ChangePassengerNameData] {
	return changePassengerNameCommand{data: data}
}

// CommitItineraryData selects a candidate from the latest search. Choice 0
// cancels the pending candidates without booking.
type CommitItineraryData struct {
	PassengerID int `json:"passengerId"`
	Choice      int `json:"choice"`
}

type commitItineraryCommand struct {
	data CommitItineraryData
}

func (c commitItineraryCommand) CommandName() string          { return "CommitItinerary" }
func (c commitItineraryCommand) Payload() CommitItineraryData { return c.data }

func NewCommitItineraryCommand(data CommitItineraryData) domain.Command[CommitItineraryData] {
	return commitItineraryCommand{data: data}
}

// ImportFileData points at a bulk import file on disk.
type ImportFileData struct {
	Path string `json:"path"`
}

type importFileCommand struct {
	data ImportFileData
}

func (c importFileCommand) CommandName() string     { return "ImportFile" }
func (c importFileCommand) Payload() ImportFileData { return c.data }

func NewImportFileCommand(data ImportFileData) domain.Command[ImportFileData] {
	return importFileCommand{data: data}
}

// SaveStateData names the snapshot to write.
type SaveStateData struct {
	Filename string `json:"filename"`
}

type saveStateCommand struct {
	data SaveStateData
}

func (c saveStateCommand) CommandName() string    { return "SaveState" }
func (c saveStateCommand) Payload() SaveStateData { return c.data }

func NewSaveStateCommand(data SaveStateData) domain.Command[SaveStateData] {
	return saveStateCommand{data: data}
}

// LoadStateData names the snapshot to load, replacing all current state.
type LoadStateData struct {
	Filename string `json:"filename"`
}

type loadStateCommand struct {
	data LoadStateData
}

func (c loadStateCommand) CommandName() string    { return "LoadState" }
func (c loadStateCommand) Payload() LoadStateData { return c.data }

func NewLoadStateCommand(data LoadStateData) domain.Command[LoadStateData] {
	return loadStateCommand{data: data}
}
