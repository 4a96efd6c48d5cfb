package jss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Reference is a nested record pointing at another object by id and/or name.
// Either field may be empty.
type Reference struct {
	ID   string
	Name string
}

// Object is a snapshot of one server object as an XML element tree. Summary objects
// from a list call carry only id and name; objects from Get carry the full record.
type Object struct {
	kind Kind
	el   *etree.Element
}

// NewObject wraps an element. The element becomes owned by the object.
func NewObject(kind Kind, el *etree.Element) *Object {
	return &Object{kind: kind, el: el}
}

// ParseObject parses one object's XML document.
func ParseObject(kind Kind, data []byte) (*Object, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse %s xml: %w", kind, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse %s xml: empty document", kind)
	}
	return NewObject(kind, root), nil
}

// parseList parses a list response and returns one summary object per child
// carrying the kind's element tag. The <size> element is ignored.
func parseList(kind Kind, data []byte) ([]*Object, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse %s list: %w", kind, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	var objects []*Object
	for _, child := range root.SelectElements(kind.Tag()) {
		objects = append(objects, NewObject(kind, child))
	}
	return objects, nil
}

// Kind returns the object's kind.
func (o *Object) Kind() Kind { return o.kind }

// ID returns the numeric id from <id> or <general/id>, or 0 when absent.
func (o *Object) ID() int {
	text := o.FindText("id")
	if text == "" {
		text = o.FindText("general/id")
	}
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return id
}

// Name returns the name from <name> or <general/name>.
func (o *Object) Name() string {
	if el := o.nameElement(); el != nil {
		return el.Text()
	}
	return ""
}

// SetName replaces the object's name.
func (o *Object) SetName(name string) error {
	el := o.nameElement()
	if el == nil {
		return fmt.Errorf("%s %d has no name element", o.kind, o.ID())
	}
	el.SetText(name)
	return nil
}

func (o *Object) nameElement() *etree.Element {
	if el := o.el.SelectElement("name"); el != nil {
		return el
	}
	return o.el.FindElement("general/name")
}

// FindText returns the text at path, or "" when the path is absent.
func (o *Object) FindText(path string) string {
	el := o.el.FindElement(path)
	if el == nil {
		return ""
	}
	return el.Text()
}

// Has reports whether path exists.
func (o *Object) Has(path string) bool {
	return o.el.FindElement(path) != nil
}

// FindAllText returns the text of every element at path, in document order.
func (o *Object) FindAllText(path string) []string {
	var out []string
	for _, el := range o.el.FindElements(path) {
		out = append(out, el.Text())
	}
	return out
}

// References returns every reference element found at path.
func (o *Object) References(path string) []Reference {
	var refs []Reference
	for _, el := range o.el.FindElements(path) {
		refs = append(refs, referenceOf(el))
	}
	return refs
}

func referenceOf(el *etree.Element) Reference {
	var ref Reference
	if id := el.SelectElement("id"); id != nil {
		ref.ID = strings.TrimSpace(id.Text())
	}
	if name := el.SelectElement("name"); name != nil {
		ref.Name = name.Text()
	}
	return ref
}

// AddReference appends <tag><id/><name/></tag> under listPath, creating the list
// element when missing. It returns false when an equal reference already exists.
func (o *Object) AddReference(listPath, tag string, ref Reference) bool {
	list := o.ensurePath(listPath)
	for _, existing := range list.SelectElements(tag) {
		r := referenceOf(existing)
		if (ref.ID != "" && r.ID == ref.ID) || (ref.Name != "" && r.Name == ref.Name) {
			return false
		}
	}
	el := list.CreateElement(tag)
	if ref.ID != "" {
		el.CreateElement("id").SetText(ref.ID)
	}
	if ref.Name != "" {
		el.CreateElement("name").SetText(ref.Name)
	}
	updateSize(list, tag)
	return true
}

// RemoveReference deletes the first child of listPath whose id or name equals key.
// It returns false when nothing matched.
func (o *Object) RemoveReference(listPath, key string) bool {
	list := o.el.FindElement(listPath)
	if list == nil {
		return false
	}
	for _, child := range list.ChildElements() {
		if child.Tag == "size" {
			continue
		}
		r := referenceOf(child)
		if (r.ID != "" && r.ID == key) || (r.Name != "" && r.Name == key) {
			list.RemoveChild(child)
			updateSize(list, child.Tag)
			return true
		}
	}
	return false
}

// AddToScope scopes the container to group.
func (o *Object) AddToScope(group *Object) error {
	scope := o.kind.Scope()
	if scope == nil {
		return fmt.Errorf("%s objects have no scope", o.kind)
	}
	if group.kind != scope.GroupKind {
		return fmt.Errorf("cannot scope a %s to a %s", o.kind, group.kind)
	}
	o.AddReference(scope.GroupList, scope.GroupTag, refTo(group))
	return nil
}

// AddMember adds a device to a static group.
func (o *Object) AddMember(device *Object) error {
	members, err := o.memberPaths(device)
	if err != nil {
		return err
	}
	o.AddReference(members.List, members.Tag, refTo(device))
	return nil
}

// RemoveMember removes a device from a static group. It returns ErrNotMember
// when the device is not listed.
func (o *Object) RemoveMember(device *Object) error {
	members, err := o.memberPaths(device)
	if err != nil {
		return err
	}
	if o.RemoveReference(members.List, strconv.Itoa(device.ID())) ||
		o.RemoveReference(members.List, device.Name()) {
		return nil
	}
	return fmt.Errorf("%s: %w", device.Name(), ErrNotMember)
}

func (o *Object) memberPaths(device *Object) (*MemberPaths, error) {
	members := o.kind.Members()
	if members == nil {
		return nil, fmt.Errorf("%s objects have no members", o.kind)
	}
	if device.kind != members.MemberKind {
		return nil, fmt.Errorf("a %s cannot be a member of a %s", device.kind, o.kind)
	}
	return members, nil
}

// PackageNames returns the names of installed packages, in document order.
func (o *Object) PackageNames() []string {
	pkgs := o.kind.Packages()
	if pkgs == nil {
		return nil
	}
	return o.FindAllText(pkgs.Packages + "/name")
}

// ReplacePackage removes the package named current and installs pkg in its place.
func (o *Object) ReplacePackage(current string, pkg *Object) error {
	pkgs := o.kind.Packages()
	if pkgs == nil {
		return fmt.Errorf("%s objects install no packages", o.kind)
	}
	if current != "" && !o.RemoveReference(pkgs.List, current) {
		return fmt.Errorf("%s %q does not install %q", o.kind, o.Name(), current)
	}
	list := o.ensurePath(pkgs.List)
	el := list.CreateElement("package")
	el.CreateElement("id").SetText(strconv.Itoa(pkg.ID()))
	el.CreateElement("name").SetText(pkg.Name())
	if o.kind == Policy {
		el.CreateElement("action").SetText("Install")
	}
	updateSize(list, "package")
	return nil
}

// Bytes serializes the object for upload.
func (o *Object) Bytes() ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(o.el.Copy())
	return doc.WriteToBytes()
}

// String renders the object as indented XML.
func (o *Object) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(o.el.Copy())
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return fmt.Sprintf("<%s id=%d: %v>", o.kind.Tag(), o.ID(), err)
	}
	return strings.TrimRight(s, "\n")
}

func refTo(o *Object) Reference {
	return Reference{ID: strconv.Itoa(o.ID()), Name: o.Name()}
}

// ensurePath returns the element at a slash separated path, creating missing levels.
func (o *Object) ensurePath(path string) *etree.Element {
	cur := o.el
	for _, tag := range strings.Split(path, "/") {
		next := cur.SelectElement(tag)
		if next == nil {
			next = cur.CreateElement(tag)
		}
		cur = next
	}
	return cur
}

// updateSize keeps a list's <size> element, when present, equal to its entry count.
func updateSize(list *etree.Element, tag string) {
	size := list.SelectElement("size")
	if size == nil {
		return
	}
	size.SetText(strconv.Itoa(len(list.SelectElements(tag))))
}
