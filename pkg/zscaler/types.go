package zscaler

import (
	"encoding/json"
	"fmt"
)

// Record is one opaque JSON object returned by a listing endpoint. The
// backends' resource schemas are not part of this library's contract; use
// DecodeRecords to project records onto your own types.
type Record = json.RawMessage

// DecodeRecords unmarshals a result sequence into a typed slice, preserving
// order.
func DecodeRecords[T any](records []Record) ([]T, error) {
	out := make([]T, 0, len(records))

	for i, record := range records {
		var item T

		err := json.Unmarshal(record, &item)
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", i, err)
		}

		out = append(out, item)
	}

	return out, nil
}

// OSType filters ZCC device listings by platform.
type OSType int

// ZCC platform identifiers. Zero means all platforms.
const (
	OSTypeAny     OSType = 0
	OSTypeIOS     OSType = 1
	OSTypeAndroid OSType = 2
	OSTypeWindows OSType = 3
	OSTypeMacOS   OSType = 4
	OSTypeLinux   OSType = 5
)

// DeviceListOptions filters a ZCC device listing.
type DeviceListOptions struct {
	// Username in email format. Empty lists all users.
	Username string
	// OSType restricts the listing to one platform.
	OSType OSType
}

// DLPEngineRequest describes a ZIA DLP engine to create.
type DLPEngineRequest struct {
	Name                 string `json:"Name,omitempty"`
	PredefinedEngineName string `json:"PredefinedEngineName,omitempty"`
	EngineExpression     string `json:"EngineExpression"`
	CustomDLPEngine      bool   `json:"CustomDlpEngine"`
	Description          string `json:"Description,omitempty"`
}

// PACFileRequest describes a ZIA PAC file to create.
type PACFileRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Domain           string `json:"domain"`
	PACContent       string `json:"pacContent"`
	Editable         bool   `json:"editable"`
	PACURLObfuscated bool   `json:"pacUrlObfuscated"`
	PACVerifyStatus  string `json:"pacVerificationStatus"`
}

// ApplicationSegmentRequest describes a ZPA application segment to create.
// Field names follow the ZPA wire schema.
type ApplicationSegmentRequest struct {
	Name                      string           `json:"name"`
	Description               string           `json:"description,omitempty"`
	Enabled                   bool             `json:"enabled"`
	HealthCheckType           string           `json:"healthCheckType,omitempty"`
	HealthReporting           string           `json:"healthReporting"`
	ICMPAccessType            string           `json:"icmpAccessType,omitempty"`
	IPAnchored                bool             `json:"ipAnchored"`
	DoubleEncrypt             bool             `json:"doubleEncrypt"`
	BypassType                string           `json:"bypassType,omitempty"`
	IsCnameEnabled            bool             `json:"isCnameEnabled"`
	ClientlessApps            []map[string]any `json:"clientlessApps"`
	InspectionApps            []map[string]any `json:"inspectionApps"`
	SRAApps                   []map[string]any `json:"sraApps"`
	CommonAppsDto             []map[string]any `json:"commonAppsDto"`
	SelectConnectorCloseToApp bool             `json:"selectConnectorCloseToApp"`
	PassiveHealthEnabled      bool             `json:"passiveHealthEnabled"`
	TCPPortRange              map[string]any   `json:"tcpPortRange"`
	TCPPortRanges             []string         `json:"tcpPortRanges"`
	UDPPortRange              map[string]any   `json:"udpPortRange"`
	UDPPortRanges             []string         `json:"udpPortRanges"`
	DomainNames               []string         `json:"domainNames"`
	SegmentGroupID            string           `json:"segmentGroupId"`
	SegmentGroupName          string           `json:"segmentGroupName,omitempty"`
	ServerGroups              []IDRef          `json:"serverGroups"`
}

// IDRef references another resource by id, the ZPA convention for
// relationships.
type IDRef struct {
	ID string `json:"id"`
}

// PolicyRuleRequest describes a ZPA access-policy rule to create.
type PolicyRuleRequest struct {
	Name       string            `json:"name"`
	Descr      string            `json:"description,omitempty"`
	Action     string            `json:"action"`
	Operator   string            `json:"operator"`
	CustomMsg  string            `json:"customMsg,omitempty"`
	Conditions []PolicyCondition `json:"conditions"`
}

// PolicyCondition groups operands under one operator.
type PolicyCondition struct {
	Operator string          `json:"operator,omitempty"`
	Operands []PolicyOperand `json:"operands"`
}

// PolicyOperand is one lhs/rhs predicate of a policy condition.
type PolicyOperand struct {
	ObjectType string `json:"objectType"`
	LHS        string `json:"lhs"`
	RHS        string `json:"rhs"`
}

// ServerGroupRequest describes a ZPA server group to create.
type ServerGroupRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Enabled           bool    `json:"enabled"`
	DynamicDiscovery  bool    `json:"dynamicDiscovery"`
	Servers           []IDRef `json:"servers"`
	AppConnectorGroup []IDRef `json:"appConnectorGroups"`
}
