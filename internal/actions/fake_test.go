package actions

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/jssimporter/jss-helper/internal/jss"
	"github.com/jssimporter/jss-helper/internal/prompt"
)

// fakeClient is an in-memory server. Get and GetAll hand out copies, so only
// saved changes are visible to later reads.
type fakeClient struct {
	t       *testing.T
	objects map[jss.Kind][]*jss.Object
	saved   []*jss.Object
}

func newFakeClient(t *testing.T) *fakeClient {
	t.Helper()
	c := &fakeClient{t: t, objects: make(map[jss.Kind][]*jss.Object)}
	for kind, docs := range fixtures {
		for _, doc := range docs {
			obj, err := jss.ParseObject(kind, []byte(doc))
			if err != nil {
				t.Fatalf("fixture %s: %v", kind, err)
			}
			c.objects[kind] = append(c.objects[kind], obj)
		}
	}
	return c
}

func (c *fakeClient) clone(obj *jss.Object) *jss.Object {
	data, err := obj.Bytes()
	if err != nil {
		c.t.Fatal(err)
	}
	copied, err := jss.ParseObject(obj.Kind(), data)
	if err != nil {
		c.t.Fatal(err)
	}
	return copied
}

func (c *fakeClient) List(ctx context.Context, kind jss.Kind) ([]*jss.Object, error) {
	return c.GetAll(ctx, kind)
}

func (c *fakeClient) Get(_ context.Context, kind jss.Kind, key string) (*jss.Object, error) {
	for _, obj := range c.objects[kind] {
		if strconv.Itoa(obj.ID()) == key || obj.Name() == key {
			return c.clone(obj), nil
		}
	}
	return nil, jss.ErrNotFound
}

func (c *fakeClient) GetAll(_ context.Context, kind jss.Kind) ([]*jss.Object, error) {
	var all []*jss.Object
	for _, obj := range c.objects[kind] {
		all = append(all, c.clone(obj))
	}
	return all, nil
}

func (c *fakeClient) Save(_ context.Context, obj *jss.Object) error {
	c.saved = append(c.saved, obj)
	for i, existing := range c.objects[obj.Kind()] {
		if existing.ID() == obj.ID() {
			c.objects[obj.Kind()][i] = c.clone(obj)
		}
	}
	return nil
}

func (c *fakeClient) URL() string { return "https://jss.example.com:8443" }

// scriptedChooser answers menus in order and records what it was shown.
type scriptedChooser struct {
	answers []string
	menus   []prompt.Menu
}

func (s *scriptedChooser) Choose(_ context.Context, menu prompt.Menu) (string, error) {
	s.menus = append(s.menus, menu)
	if len(s.answers) == 0 {
		return "", prompt.ErrCancelled
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

type fakeDiffer struct {
	left, right string
}

func (d *fakeDiffer) Diff(_ context.Context, left, right string) (string, error) {
	d.left, d.right = left, right
	return "DIFF", nil
}

type fakeBrowser struct {
	opened []string
}

func (b *fakeBrowser) Open(_ context.Context, url string) error {
	b.opened = append(b.opened, url)
	return nil
}

type harness struct {
	runner  *Runner
	client  *fakeClient
	out     *bytes.Buffer
	chooser *scriptedChooser
	differ  *fakeDiffer
	browser *fakeBrowser
}

func newHarness(t *testing.T, answers ...string) *harness {
	h := &harness{
		client:  newFakeClient(t),
		out:     &bytes.Buffer{},
		chooser: &scriptedChooser{answers: answers},
		differ:  &fakeDiffer{},
		browser: &fakeBrowser{},
	}
	h.runner = &Runner{
		Client:  h.client,
		Out:     h.out,
		Chooser: h.chooser,
		Differ:  h.differ,
		Browser: h.browser,
	}
	return h
}

func xml(s string) string { return strings.TrimSpace(s) }

var fixtures = map[jss.Kind][]string{
	jss.Computer: {
		xml(`<computer><general><id>7</id><name>lab-01</name></general></computer>`),
		xml(`<computer><general><id>8</id><name>lab-02</name></general></computer>`),
		xml(`<computer><general><id>9</id><name>office-01</name></general></computer>`),
	},
	jss.ComputerGroup: {
		xml(`<computer_group><id>5</id><name>Lab Macs</name><is_smart>false</is_smart>
<computers><size>1</size><computer><id>7</id><name>lab-01</name></computer></computers></computer_group>`),
		xml(`<computer_group><id>6</id><name>Staff Macs</name><is_smart>false</is_smart>
<computers><size>0</size></computers></computer_group>`),
	},
	jss.MobileDeviceGroup: {
		xml(`<mobile_device_group><id>3</id><name>Lab iPads</name>
<mobile_devices><size>0</size></mobile_devices></mobile_device_group>`),
	},
	jss.Policy: {
		xml(`<policy><general><id>1</id><name>Install Nethack-3.4.3</name><frequency>Once per computer</frequency>
<trigger_checkin>true</trigger_checkin><trigger_other/></general>
<scope><all_computers>false</all_computers>
<computer_groups><computer_group><id>5</id><name>Lab Macs</name></computer_group></computer_groups>
<exclusions><computer_groups><computer_group><id>6</id><name>Staff Macs</name></computer_group></computer_groups></exclusions></scope>
<package_configuration><packages><size>1</size><package><id>10</id><name>Nethack-3.4.3.pkg</name><action>Install</action></package></packages></package_configuration>
</policy>`),
		xml(`<policy><general><id>2</id><name>Install Firefox-52.0</name><frequency>Ongoing</frequency>
<trigger_checkin>true</trigger_checkin></general>
<scope><all_computers>true</all_computers><computer_groups/></scope>
<package_configuration><packages><size>1</size><package><id>20</id><name>Firefox-52.0.pkg</name><action>Install</action></package></packages></package_configuration>
</policy>`),
		xml(`<policy><general><id>3</id><name>Update Inventory</name><frequency>Once every day</frequency>
<trigger_checkin>False</trigger_checkin></general>
<scope><all_computers>false</all_computers><computer_groups/></scope>
<package_configuration><packages><size>0</size></packages></package_configuration>
</policy>`),
	},
	jss.OSXConfigurationProfile: {
		xml(`<os_x_configuration_profile><general><id>30</id><name>Wi-Fi</name></general>
<scope><all_computers>false</all_computers>
<computer_groups><computer_group><id>5</id><name>Lab Macs</name></computer_group></computer_groups>
<exclusions><computer_groups/></exclusions></scope></os_x_configuration_profile>`),
	},
	jss.MobileDeviceConfigurationProfile: {
		xml(`<configuration_profile><general><id>40</id><name>iPad Restrictions</name></general>
<scope><all_mobile_devices>false</all_mobile_devices>
<mobile_device_groups><mobile_device_group><id>3</id><name>Lab iPads</name></mobile_device_group></mobile_device_groups>
</scope></configuration_profile>`),
		xml(`<configuration_profile><general><id>41</id><name>Everyone</name></general>
<scope><all_mobile_devices>true</all_mobile_devices><mobile_device_groups/>
<exclusions><mobile_device_groups><mobile_device_group><id>3</id><name>Lab iPads</name></mobile_device_group></mobile_device_groups></exclusions>
</scope></configuration_profile>`),
	},
	jss.Package: {
		xml(`<package><id>10</id><name>Nethack-3.4.3.pkg</name></package>`),
		xml(`<package><id>11</id><name>Nethack-3.4.4.pkg</name></package>`),
		xml(`<package><id>12</id><name>Nethack-3.4.2.pkg</name></package>`),
		xml(`<package><id>20</id><name>Firefox-52.0.pkg</name></package>`),
		xml(`<package><id>60</id><name>nethack-latest</name></package>`),
	},
	jss.ComputerConfiguration: {
		xml(`<computer_configuration><general><id>50</id><name>Lab Image</name></general>
<packages><size>2</size><package><id>10</id><name>Nethack-3.4.3.pkg</name></package><package><id>10</id><name>Nethack-3.4.3.pkg</name></package></packages>
</computer_configuration>`),
	},
}
