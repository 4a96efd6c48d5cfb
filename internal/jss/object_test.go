package jss

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func mustParse(t *testing.T, kind Kind, xml string) *Object {
	t.Helper()
	obj, err := ParseObject(kind, []byte(xml))
	if err != nil {
		t.Fatalf("ParseObject: %v", err)
	}
	return obj
}

func TestObjectIdentity(t *testing.T) {
	policy := mustParse(t, Policy, policyXML)
	if policy.ID() != 1 || policy.Name() != "Install Nethack-3.4.3" {
		t.Errorf("policy identity = %d/%q", policy.ID(), policy.Name())
	}

	group := mustParse(t, ComputerGroup, groupXML)
	if group.ID() != 5 || group.Name() != "Lab Macs" {
		t.Errorf("group identity = %d/%q", group.ID(), group.Name())
	}

	summary := mustParse(t, Package, `<package><id>x</id></package>`)
	if summary.ID() != 0 || summary.Name() != "" {
		t.Errorf("malformed summary identity = %d/%q", summary.ID(), summary.Name())
	}
}

func TestReferences(t *testing.T) {
	policy := mustParse(t, Policy, policyXML)
	got := policy.References(Policy.Scope().Groups)
	want := []Reference{{ID: "5", Name: "Lab Macs"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("References = %+v, want %+v", got, want)
	}
	if refs := policy.References(Policy.Scope().Exclusions); len(refs) != 0 {
		t.Errorf("exclusions = %+v", refs)
	}
	if got := policy.PackageNames(); !reflect.DeepEqual(got, []string{"Nethack-3.4.3.pkg"}) {
		t.Errorf("PackageNames = %v", got)
	}
}

func TestAddToScope(t *testing.T) {
	policy := mustParse(t, Policy, policyXML)
	other := mustParse(t, ComputerGroup, `<computer_group><id>6</id><name>Staff</name></computer_group>`)

	if err := policy.AddToScope(other); err != nil {
		t.Fatalf("AddToScope: %v", err)
	}
	// Adding the same group twice keeps a single reference.
	if err := policy.AddToScope(other); err != nil {
		t.Fatalf("AddToScope: %v", err)
	}
	if n := len(policy.References(Policy.Scope().Groups)); n != 2 {
		t.Errorf("scoped groups = %d, want 2", n)
	}

	mdGroup := mustParse(t, MobileDeviceGroup, `<mobile_device_group><id>1</id><name>iPads</name></mobile_device_group>`)
	if err := policy.AddToScope(mdGroup); err == nil {
		t.Error("scoping a policy to a mobile device group should fail")
	}
}

func TestMembers(t *testing.T) {
	group := mustParse(t, ComputerGroup, groupXML)
	newcomer := mustParse(t, Computer, `<computer><general><id>8</id><name>lab-02</name></general></computer>`)
	member := mustParse(t, Computer, `<computer><general><id>7</id><name>lab-01</name></general></computer>`)

	if err := group.AddMember(newcomer); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if got := group.FindText("computers/size"); got != "2" {
		t.Errorf("size after add = %q", got)
	}
	if err := group.RemoveMember(member); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if err := group.RemoveMember(member); !errors.Is(err, ErrNotMember) {
		t.Errorf("second RemoveMember err = %v, want ErrNotMember", err)
	}
	names := group.FindAllText("computers/computer/name")
	if !reflect.DeepEqual(names, []string{"lab-02"}) {
		t.Errorf("members = %v", names)
	}
}

func TestReplacePackage(t *testing.T) {
	policy := mustParse(t, Policy, policyXML)
	pkg := mustParse(t, Package, `<package><id>11</id><name>Nethack-3.4.4.pkg</name></package>`)

	if err := policy.ReplacePackage("Nethack-3.4.3.pkg", pkg); err != nil {
		t.Fatalf("ReplacePackage: %v", err)
	}
	if got := policy.PackageNames(); !reflect.DeepEqual(got, []string{"Nethack-3.4.4.pkg"}) {
		t.Errorf("PackageNames = %v", got)
	}
	if got := policy.FindText("package_configuration/packages/package/action"); got != "Install" {
		t.Errorf("action = %q", got)
	}
	if err := policy.ReplacePackage("Missing.pkg", pkg); err == nil {
		t.Error("replacing an absent package should fail")
	}
}

func TestSetNameAndString(t *testing.T) {
	policy := mustParse(t, Policy, policyXML)
	if err := policy.SetName("Install Nethack-3.4.4"); err != nil {
		t.Fatal(err)
	}
	s := policy.String()
	if !strings.Contains(s, "<name>Install Nethack-3.4.4</name>") {
		t.Errorf("String() missing renamed policy:\n%s", s)
	}
	if !strings.HasPrefix(s, "<policy>") {
		t.Errorf("String() should start with the root element:\n%s", s)
	}
}

func TestParseList(t *testing.T) {
	data := `<policies><size>2</size><policy><id>1</id><name>A</name></policy><policy><id>2</id><name>B</name></policy></policies>`
	objs, err := parseList(Policy, []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(objs) != 2 || objs[1].ID() != 2 || objs[1].Name() != "B" {
		t.Errorf("parseList = %v", objs)
	}
}
