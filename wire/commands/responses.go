package commands

// ResponseCommand is implemented by every member of the response family
type ResponseCommand interface {
	Command
	GetCorrelationID() int32
}

// Response answers the command whose CommandID equals CorrelationID
type Response struct {
	BaseCommand
	CorrelationID int32 `json:"correlationId"`
}

func (r *Response) DataStructureType() byte { return IDResponse }

func (r *Response) IsResponse() bool { return true }

func (r *Response) GetCorrelationID() int32 { return r.CorrelationID }

func (r *Response) SetCorrelationID(id int32) { r.CorrelationID = id }

// DataResponse is a response carrying an arbitrary data structure
type DataResponse struct {
	Response
	Data DataStructure `json:"data,omitempty"`
}

func (r *DataResponse) DataStructureType() byte { return IDDataResponse }

// IntegerResponse is a response carrying a single int
type IntegerResponse struct {
	Response
	Result int32 `json:"result"`
}

func (r *IntegerResponse) DataStructureType() byte { return IDIntegerResponse }
