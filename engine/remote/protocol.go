package remote

import "encoding/json"

// Operation names understood by the engine worker.
const (
	opGetAgencies         = "getAgencies"
	opGetRoutes           = "getRoutes"
	opGetTrips            = "getTrips"
	opGetStops            = "getStops"
	opGetStopTimes        = "getStopTimes"
	opGetAlerts           = "getAlerts"
	opGetVehiclePositions = "getVehiclePositions"
	opGetTripUpdates      = "getTripUpdates"
	opActiveServiceIDs    = "getActiveServiceIds"
	opFetchRealtimeData   = "fetchRealtimeData"
	opExportDatabase      = "exportDatabase"
)

// request is the wire form of one engine call.
type request struct {
	ID   string          `json:"id"`
	Op   string          `json:"op"`
	Args json.RawMessage `json:"args,omitempty"`
}

// reply is one message on the reply inbox. A reply carrying Result or Error
// is final; a reply carrying only Progress is not.
type reply struct {
	ID       string          `json:"id"`
	Progress *float64        `json:"progress,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (r *reply) final() bool { return r.Result != nil || r.Error != "" }
