// Package core implements the simulation substrate: the virtual message
// bus, the node registry, the fault injector, and the tick-sequencing
// engine shared by every plant and ECU in the bench.
package core

// MessageID identifies a message class on the bus. The payload shape for
// each ID is fixed — see the Payload implementations below.
type MessageID string

const (
	SteeringCmd   MessageID = "STEERING_CMD"
	BrakeCmd      MessageID = "BRAKE_CMD"
	AccelCmd      MessageID = "ACCEL_CMD"
	WheelSpeed    MessageID = "WHEEL_SPEED"
	YawRate       MessageID = "YAW_RATE"
	LateralAccel  MessageID = "LATERAL_ACCEL"
	GPSPos        MessageID = "GPS_POS"
	AccelX        MessageID = "ACCEL_X"
	LoadCurrent   MessageID = "LOAD_CURRENT"
	RadarObjects  MessageID = "RADAR_OBJECTS"
	CameraLane    MessageID = "CAMERA_LANE"
	HVVoltage     MessageID = "HV_VOLTAGE"
	HVCurrent     MessageID = "HV_CURRENT"
	HVTemp        MessageID = "HV_TEMP"
	BMSSoC        MessageID = "BMS_SOC"
	ContactorState MessageID = "CONTACTOR_STATE"
	ChargeRequest MessageID = "CHARGE_REQUEST"
	ChargerStatus MessageID = "CHARGER_STATUS"
	ChargerOutput MessageID = "CHARGER_OUTPUT"
	OTAUpdate     MessageID = "OTA_UPDATE"
	OTAStatus     MessageID = "OTA_STATUS"
	OBDRequest    MessageID = "OBD_REQUEST"
	OBDResponse   MessageID = "OBD_RESPONSE"
	UDSRequest    MessageID = "UDS_REQUEST"
	UDSResponse   MessageID = "UDS_RESPONSE"
	V2XRx         MessageID = "V2X_RX"
	HMIWarning    MessageID = "HMI_WARNING"
	SecurityAlert MessageID = "SECURITY_ALERT"
	SetEnvMu      MessageID = "SET_ENV_MU"
	SetEnvThermal MessageID = "SET_ENV_THERMAL"
	SetEnvVisibility MessageID = "SET_ENV_VISIBILITY"
	SetSensorDrift   MessageID = "SET_SENSOR_DRIFT"
	ResetTrip     MessageID = "RESET_TRIP"
	OdometerData  MessageID = "ODOMETER_DATA"
	DeployAirbag  MessageID = "DEPLOY_AIRBAG"
	DeploySeatbelt MessageID = "DEPLOY_SEATBELT"
	PostCrashAlert MessageID = "POST_CRASH_ALERT"
	ESCStatus     MessageID = "ESC_STATUS"
)

// Payload is the closed sum type carried by a broadcast. Every concrete
// payload struct below implements it; receivers dispatch with a type
// switch instead of runtime shape checks.
type Payload interface {
	isPayload()
}

// Float wraps the many message IDs whose payload is a single scalar
// (STEERING_CMD, BRAKE_CMD, ACCEL_CMD, WHEEL_SPEED, YAW_RATE, LATERAL_ACCEL,
// ACCEL_X, LOAD_CURRENT, BMS_SOC, HV_VOLTAGE, HV_CURRENT, HV_TEMP).
type Float float64

func (Float) isPayload() {}

// Bool wraps boolean payloads (CONTACTOR_STATE, and deploy flags).
type Bool bool

func (Bool) isPayload() {}

// Str wraps enum-string payloads (OTA_STATUS, HMI_WARNING, ESC_STATUS).
type Str string

func (Str) isPayload() {}

// Empty is used by messages with no payload (RESET_TRIP).
type Empty struct{}

func (Empty) isPayload() {}

// GPSPosition is the GPS_POS payload.
type GPSPosition struct {
	X, Y float64
}

func (GPSPosition) isPayload() {}

// RadarObject is one entry of a RADAR_OBJECTS list.
type RadarObject struct {
	ID        string
	Dist      float64
	RelSpeed  float64
	LatPos    float64
	LatSpeed  float64
}

// RadarObjectList is the RADAR_OBJECTS payload.
type RadarObjectList []RadarObject

func (RadarObjectList) isPayload() {}

// CameraLaneData is the CAMERA_LANE payload.
type CameraLaneData struct {
	LaneOffset float64
	HeadingIdx float64
	Curvature  float64
	Confidence float64
}

func (CameraLaneData) isPayload() {}

// ChargeRequestData is the CHARGE_REQUEST payload.
type ChargeRequestData struct {
	VoltageTarget   float64
	CurrentTarget   float64
	ChargingEnabled bool
}

func (ChargeRequestData) isPayload() {}

// ChargerStatusData is the CHARGER_STATUS payload.
type ChargerStatusData struct {
	State    string
	MaxPower float64
}

func (ChargerStatusData) isPayload() {}

// ChargerOutputData is the CHARGER_OUTPUT payload.
type ChargerOutputData struct {
	Voltage float64
	Current float64
}

func (ChargerOutputData) isPayload() {}

// OTAUpdateData is the OTA_UPDATE payload.
type OTAUpdateData struct {
	Version   string
	Signature string
	Binary    string
}

func (OTAUpdateData) isPayload() {}

// OBDRequestData is the OBD_REQUEST payload.
type OBDRequestData struct {
	Mode int
	PID  int
}

func (OBDRequestData) isPayload() {}

// OBDResponseData is the OBD_RESPONSE payload.
type OBDResponseData struct {
	Mode int
	PID  int
	Data any
}

func (OBDResponseData) isPayload() {}

// UDSRequestData is the UDS_REQUEST payload.
type UDSRequestData struct {
	SID   int
	SubFn int
	DID   int
	Data  int
	HasSubFn bool
	HasDID   bool
	HasData  bool
}

func (UDSRequestData) isPayload() {}

// UDSResponseData is the UDS_RESPONSE payload, positive or negative.
type UDSResponseData struct {
	SID        int
	SubFn      int
	Data       any
	Negative   bool
	RequestSID int
	NRC        int
}

func (UDSResponseData) isPayload() {}

// V2XBSM is the V2X_RX Basic Safety Message payload.
type V2XBSM struct {
	ID    string
	Speed float64
}

func (V2XBSM) isPayload() {}

// SecurityAlertData is the SECURITY_ALERT payload.
type SecurityAlertData struct {
	Type    string
	Details string
}

func (SecurityAlertData) isPayload() {}

// EnvMu is the SET_ENV_MU payload.
type EnvMu struct {
	MuLeft  float64
	MuRight float64
}

func (EnvMu) isPayload() {}

// EnvThermal is the SET_ENV_THERMAL payload.
type EnvThermal struct {
	AmbientTemp float64
}

func (EnvThermal) isPayload() {}

// SensorDrift is the SET_SENSOR_DRIFT payload.
type SensorDrift struct {
	Voltage float64
	Current float64
	Temp    float64
}

func (SensorDrift) isPayload() {}

// OdometerReading is the ODOMETER_DATA payload.
type OdometerReading struct {
	TotalKM float64
	TripKM  float64
}

func (OdometerReading) isPayload() {}

// PostCrashLocation is the POST_CRASH_ALERT payload.
type PostCrashLocation struct {
	Loc string
}

func (PostCrashLocation) isPayload() {}
