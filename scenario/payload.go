package scenario

import (
	"fmt"

	"github.com/vvtb/bench/core"
)

// buildPayload constructs the core.Payload for id from a plain
// map[string]any (the shape goja.Value.Export() produces for a JS object).
// The mapping from MessageID to payload shape is fixed by the bus's closed
// sum type (core.Payload) — a scenario script never chooses the shape, only
// the field values, the same way a Go sender never does either.
func buildPayload(id core.MessageID, raw map[string]any) (core.Payload, error) {
	switch id {
	case core.SteeringCmd, core.BrakeCmd, core.AccelCmd, core.WheelSpeed,
		core.YawRate, core.LateralAccel, core.AccelX, core.LoadCurrent,
		core.BMSSoC, core.HVVoltage, core.HVCurrent, core.HVTemp,
		core.SetEnvVisibility:
		return core.Float(num(raw, "value")), nil

	case core.ContactorState, core.DeployAirbag, core.DeploySeatbelt:
		return core.Bool(boolean(raw, "value")), nil

	case core.OTAStatus, core.HMIWarning, core.ESCStatus:
		return core.Str(str(raw, "value")), nil

	case core.ResetTrip:
		return core.Empty{}, nil

	case core.GPSPos:
		return core.GPSPosition{X: num(raw, "x"), Y: num(raw, "y")}, nil

	case core.RadarObjects:
		return buildRadarObjects(raw)

	case core.CameraLane:
		return core.CameraLaneData{
			LaneOffset: num(raw, "laneOffset"),
			HeadingIdx: num(raw, "headingIdx"),
			Curvature:  num(raw, "curvature"),
			Confidence: num(raw, "confidence"),
		}, nil

	case core.ChargeRequest:
		return core.ChargeRequestData{
			VoltageTarget:   num(raw, "voltageTarget"),
			CurrentTarget:   num(raw, "currentTarget"),
			ChargingEnabled: boolean(raw, "chargingEnabled"),
		}, nil

	case core.ChargerStatus:
		return core.ChargerStatusData{State: str(raw, "state"), MaxPower: num(raw, "maxPower")}, nil

	case core.ChargerOutput:
		return core.ChargerOutputData{Voltage: num(raw, "voltage"), Current: num(raw, "current")}, nil

	case core.OTAUpdate:
		return core.OTAUpdateData{
			Version:   str(raw, "version"),
			Signature: str(raw, "signature"),
			Binary:    str(raw, "binary"),
		}, nil

	case core.OBDRequest:
		return core.OBDRequestData{Mode: int(num(raw, "mode")), PID: int(num(raw, "pid"))}, nil

	case core.OBDResponse:
		return core.OBDResponseData{Mode: int(num(raw, "mode")), PID: int(num(raw, "pid")), Data: raw["data"]}, nil

	case core.UDSRequest:
		req := core.UDSRequestData{SID: int(num(raw, "sid"))}
		if v, ok := raw["subFn"]; ok {
			req.SubFn = int(toFloat(v))
			req.HasSubFn = true
		}
		if v, ok := raw["did"]; ok {
			req.DID = int(toFloat(v))
			req.HasDID = true
		}
		if v, ok := raw["data"]; ok {
			req.Data = int(toFloat(v))
			req.HasData = true
		}
		return req, nil

	case core.UDSResponse:
		return core.UDSResponseData{
			SID:        int(num(raw, "sid")),
			SubFn:      int(num(raw, "subFn")),
			Data:       raw["data"],
			Negative:   boolean(raw, "negative"),
			RequestSID: int(num(raw, "requestSid")),
			NRC:        int(num(raw, "nrc")),
		}, nil

	case core.V2XRx:
		return core.V2XBSM{ID: str(raw, "id"), Speed: num(raw, "speed")}, nil

	case core.SecurityAlert:
		return core.SecurityAlertData{Type: str(raw, "type"), Details: str(raw, "details")}, nil

	case core.SetEnvMu:
		return core.EnvMu{MuLeft: num(raw, "muLeft"), MuRight: num(raw, "muRight")}, nil

	case core.SetEnvThermal:
		return core.EnvThermal{AmbientTemp: num(raw, "ambientTemp")}, nil

	case core.SetSensorDrift:
		return core.SensorDrift{Voltage: num(raw, "voltage"), Current: num(raw, "current"), Temp: num(raw, "temp")}, nil

	case core.OdometerData:
		return core.OdometerReading{TotalKM: num(raw, "totalKm"), TripKM: num(raw, "tripKm")}, nil

	case core.PostCrashAlert:
		return core.PostCrashLocation{Loc: str(raw, "loc")}, nil

	default:
		return nil, fmt.Errorf("scenario: unknown message id %q", id)
	}
}

func buildRadarObjects(raw map[string]any) (core.Payload, error) {
	items, _ := raw["objects"].([]any)
	out := make(core.RadarObjectList, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("scenario: RADAR_OBJECTS entry is not an object")
		}
		out = append(out, core.RadarObject{
			ID:       str(obj, "id"),
			Dist:     num(obj, "dist"),
			RelSpeed: num(obj, "relSpeed"),
			LatPos:   num(obj, "latPos"),
			LatSpeed: num(obj, "latSpeed"),
		})
	}
	return out, nil
}

func num(raw map[string]any, key string) float64 {
	return toFloat(raw[key])
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func boolean(raw map[string]any, key string) bool {
	b, _ := raw[key].(bool)
	return b
}

func str(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
