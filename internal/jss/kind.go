package jss

import "fmt"

// Kind identifies a type of server-managed object. Every kind carries its API
// endpoint and XML element name as data; container kinds also carry the paths of
// the references they hold, so callers pick behavior by kind instead of by
// inspecting objects.
type Kind int

const (
	Computer Kind = iota + 1
	ComputerGroup
	MobileDevice
	MobileDeviceGroup
	Policy
	OSXConfigurationProfile
	MobileDeviceConfigurationProfile
	Package
	Category
	ComputerConfiguration
)

// ScopePaths locates scope data inside a scopable container.
// - GroupList/GroupTag: parent path and element tag of scoped groups.
// - Groups: full path of scoped group references.
// - Exclusions: full path of excluded group references.
// - AllDevices: flag that scopes the container to every device of its type.
// - GroupKind: the group kind that can appear in this scope.
type ScopePaths struct {
	GroupList  string
	GroupTag   string
	Groups     string
	Exclusions string
	AllDevices string
	GroupKind  Kind
}

// MemberPaths locates static membership inside a group.
type MemberPaths struct {
	List       string
	Tag        string
	MemberKind Kind
}

// PackagePaths locates installed packages inside a container.
type PackagePaths struct {
	List     string
	Packages string
}

type kindInfo struct {
	label    string
	endpoint string
	tag      string
	scope    *ScopePaths
	members  *MemberPaths
	packages *PackagePaths
}

var computerScope = &ScopePaths{
	GroupList:  "scope/computer_groups",
	GroupTag:   "computer_group",
	Groups:     "scope/computer_groups/computer_group",
	Exclusions: "scope/exclusions/computer_groups/computer_group",
	AllDevices: "scope/all_computers",
	GroupKind:  ComputerGroup,
}

var mobileDeviceScope = &ScopePaths{
	GroupList:  "scope/mobile_device_groups",
	GroupTag:   "mobile_device_group",
	Groups:     "scope/mobile_device_groups/mobile_device_group",
	Exclusions: "scope/exclusions/mobile_device_groups/mobile_device_group",
	AllDevices: "scope/all_mobile_devices",
	GroupKind:  MobileDeviceGroup,
}

var kinds = map[Kind]kindInfo{
	Computer: {label: "computer", endpoint: "computers", tag: "computer"},
	ComputerGroup: {label: "computer group", endpoint: "computergroups", tag: "computer_group",
		members: &MemberPaths{List: "computers", Tag: "computer", MemberKind: Computer}},
	MobileDevice: {label: "mobile device", endpoint: "mobiledevices", tag: "mobile_device"},
	MobileDeviceGroup: {label: "mobile device group", endpoint: "mobiledevicegroups", tag: "mobile_device_group",
		members: &MemberPaths{List: "mobile_devices", Tag: "mobile_device", MemberKind: MobileDevice}},
	Policy: {label: "policy", endpoint: "policies", tag: "policy", scope: computerScope,
		packages: &PackagePaths{List: "package_configuration/packages", Packages: "package_configuration/packages/package"}},
	OSXConfigurationProfile: {label: "configuration profile", endpoint: "osxconfigurationprofiles",
		tag: "os_x_configuration_profile", scope: computerScope},
	MobileDeviceConfigurationProfile: {label: "mobile device configuration profile",
		endpoint: "mobiledeviceconfigurationprofiles", tag: "configuration_profile", scope: mobileDeviceScope},
	Package:  {label: "package", endpoint: "packages", tag: "package"},
	Category: {label: "category", endpoint: "categories", tag: "category"},
	ComputerConfiguration: {label: "imaging configuration", endpoint: "computerconfigurations",
		tag: "computer_configuration", packages: &PackagePaths{List: "packages", Packages: "packages/package"}},
}

// info returns the kind's data; unknown kinds get the zero value, which is
// neither scopable nor a container.
func (k Kind) info() kindInfo {
	return kinds[k]
}

// String returns a human-readable label, e.g. "computer group".
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.label
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Endpoint is the JSSResource path segment, e.g. "computergroups".
func (k Kind) Endpoint() string { return k.info().endpoint }

// Tag is the XML element name of a single object of this kind.
func (k Kind) Tag() string { return k.info().tag }

// Scope returns scope paths, or nil when the kind is not scopable.
func (k Kind) Scope() *ScopePaths { return k.info().scope }

// Members returns membership paths, or nil when the kind is not a static-membership group.
func (k Kind) Members() *MemberPaths { return k.info().members }

// Packages returns package paths, or nil when the kind installs no packages.
func (k Kind) Packages() *PackagePaths { return k.info().packages }
