package ecus

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
)

// gatewayAllowlist is the set of senders permitted to issue *_CMD messages.
// Anything else triggers an UNAUTHORIZED_ACCESS security alert.
var gatewayAllowlist = map[string]bool{
	"ADAS_ECU":        true,
	"BMS_ECU":         true,
	"VehicleDynamics": true,
	"TestHarness":     true,
	"V2XRadio":        true,
}

// Gateway is the central ECU for intrusion detection, secure OTA,
// OBD-II/UDS diagnostics, and V2X message routing.
type Gateway struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	idsEnabled        bool
	currentVersion    string
	diagnosticSession int
	securitySeed      int
	securityUnlocked  bool
}

// NewGateway constructs a Gateway ECU with IDS enabled and firmware v1.0.
func NewGateway(name string, bus *core.Bus, log *logrus.Entry) *Gateway {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Gateway{
		name:              name,
		bus:               bus,
		log:               log.WithField("node", name),
		idsEnabled:        true,
		currentVersion:    "1.0",
		diagnosticSession: 0x01,
	}
}

func (g *Gateway) Name() string { return g.name }

func (g *Gateway) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.OTAUpdate:
		if u, ok := payload.(core.OTAUpdateData); ok {
			g.handleOTAUpdate(u)
		}
		return
	case core.OBDRequest:
		if r, ok := payload.(core.OBDRequestData); ok {
			g.handleOBDRequest(r)
		}
		return
	case core.V2XRx:
		if b, ok := payload.(core.V2XBSM); ok {
			g.handleV2X(b)
		}
		return
	case core.UDSRequest:
		if r, ok := payload.(core.UDSRequestData); ok {
			g.handleUDSRequest(r)
		}
		return
	}

	if g.idsEnabled {
		g.detectIntrusion(id, sender)
	}
}

// detectIntrusion applies the allowlist check to any message whose ID
// names a command, i.e. is not one of the four dispatched protocols above.
func (g *Gateway) detectIntrusion(id core.MessageID, sender string) {
	if !strings.Contains(string(id), "CMD") {
		return
	}
	if gatewayAllowlist[sender] {
		return
	}
	g.log.WithFields(logrus.Fields{"sender": sender, "msg_id": id}).Warn("unauthorized sender for command message")
	g.broadcast(core.SecurityAlert, core.SecurityAlertData{
		Type:    "UNAUTHORIZED_ACCESS",
		Details: sender + "->" + string(id),
	})
}

// handleOTAUpdate verifies the update signature, simulates an A/B-partition
// flash, and rolls back on a corrupt chunk.
func (g *Gateway) handleOTAUpdate(update core.OTAUpdateData) {
	if update.Signature != "valid_sig" {
		g.broadcast(core.OTAStatus, core.Str("FAILED_SIG_VERIFY"))
		return
	}

	if update.Binary == "corrupt_chunk" {
		g.broadcast(core.OTAStatus, core.Str("ROLLBACK_COMPLETE"))
		return
	}

	g.currentVersion = update.Version
	g.broadcast(core.OTAStatus, core.Str("SUCCESS"))
}

// handleOBDRequest serves a small fixed OBD-II PID table (modes 01/03/09).
func (g *Gateway) handleOBDRequest(req core.OBDRequestData) {
	resp := core.OBDResponseData{Mode: req.Mode + 0x40, PID: req.PID, Data: nil}

	switch req.Mode {
	case 0x01:
		switch req.PID {
		case 0x01:
			resp.Data = 0x00
		case 0x0C:
			resp.Data = 3000
		}
	case 0x03:
		resp.Data = []string{"P0123"}
	case 0x09:
		if req.PID == 0x02 {
			resp.Data = "1FA-VIRTUAL-CAR-001"
		}
	}

	g.broadcast(core.OBDResponse, resp)
}

// handleUDSRequest implements the ISO-14229 subset: session control, read
// data by identifier, security access, and routine control.
func (g *Gateway) handleUDSRequest(req core.UDSRequestData) {
	subFn := 0
	if req.HasSubFn {
		subFn = req.SubFn
	}
	did := 0
	if req.HasDID {
		did = req.DID
	}

	resp := core.UDSResponseData{SID: req.SID + 0x40, SubFn: subFn}
	nrc := 0

	switch req.SID {
	case 0x10: // Diagnostic Session Control
		switch subFn {
		case 0x01, 0x02, 0x03:
			g.diagnosticSession = subFn
			resp.Data = map[string]int{"p2_server": 50, "p2_star_server": 500}
		default:
			nrc = 0x12
		}

	case 0x22: // Read Data By Identifier
		switch did {
		case 0xF190:
			resp.Data = "1FA-VIRTUAL-CAR-001"
		case 0x0200:
			resp.Data = 400.5
		default:
			nrc = 0x31
		}

	case 0x27: // Security Access
		switch subFn {
		case 0x01:
			g.securitySeed = 0x1234
			resp.Data = g.securitySeed
		case 0x02:
			key := 0
			if req.HasData {
				key = req.Data
			}
			if key == g.securitySeed+1 {
				g.securityUnlocked = true
				resp.Data = "UNLOCKED"
			} else {
				nrc = 0x35
			}
		default:
			nrc = 0x35
		}

	case 0x31: // Routine Control
		switch subFn {
		case 0x01:
			if did == 0x0100 {
				resp.Data = "STARTED"
			} else {
				nrc = 0x31
			}
		default:
			nrc = 0x12
		}

	default:
		nrc = 0x11
	}

	if nrc != 0 {
		g.broadcast(core.UDSResponse, core.UDSResponseData{
			SID:        0x7F,
			Negative:   true,
			RequestSID: req.SID,
			NRC:        nrc,
		})
		return
	}
	g.broadcast(core.UDSResponse, resp)
}

// handleV2X implements a simplified Intersection Movement Assist check.
func (g *Gateway) handleV2X(bsm core.V2XBSM) {
	if bsm.ID == "RemoteVehicle_1" && bsm.Speed > 10.0 {
		g.broadcast(core.HMIWarning, core.Str("INTERSECTION_COLLISION_RISK"))
	}
}

// Step executes no periodic logic; Gateway is purely event-driven.
func (g *Gateway) Step(dt time.Duration) {}

func (g *Gateway) broadcast(id core.MessageID, p core.Payload) {
	if g.bus == nil {
		return
	}
	g.bus.Broadcast(id, p, g.name)
}

// SecurityUnlocked reports whether the UDS security-access handshake has
// completed, for scenario and test assertions.
func (g *Gateway) SecurityUnlocked() bool { return g.securityUnlocked }

// CurrentVersion returns the firmware version string last accepted by OTA.
func (g *Gateway) CurrentVersion() string { return g.currentVersion }
