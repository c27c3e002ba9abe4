package step

import "strings"

// classInfo carries the slice of schema knowledge the merge pipeline
// needs: canonical casing, the supertype chain, and where the Name
// attribute sits in the record.
type classInfo struct {
	canonical string
	parent    string // canonical name of the supertype, "" at a hierarchy root
	nameIdx   int    // index of the Name attribute, -1 when the class has none
}

// classTable covers the classes common to IFC2X3 and IFC4 that the tool
// inspects or counts. Unknown classes are preserved verbatim in models;
// they are merely invisible to supertype queries and GlobalId tracking.
// Rooted classes (IfcRoot descendants) have GlobalId at 0 and Name at 2.
var classTable = map[string]classInfo{
	// appearance classes
	"IFCCOLOURRGB":                   {"IfcColourRgb", "IfcColourSpecification", 0},
	"IFCCOLOURSPECIFICATION":         {"IfcColourSpecification", "", 0},
	"IFCPRESENTATIONSTYLEASSIGNMENT": {"IfcPresentationStyleAssignment", "", -1},
	"IFCSURFACESTYLE":                {"IfcSurfaceStyle", "IfcPresentationStyle", 0},
	"IFCCURVESTYLE":                  {"IfcCurveStyle", "IfcPresentationStyle", 0},
	"IFCFILLAREASTYLE":               {"IfcFillAreaStyle", "IfcPresentationStyle", 0},
	"IFCTEXTSTYLE":                   {"IfcTextStyle", "IfcPresentationStyle", 0},
	"IFCPRESENTATIONSTYLE":           {"IfcPresentationStyle", "", 0},
	"IFCMATERIAL":                    {"IfcMaterial", "", 0},
	"IFCSTYLEDITEM":                  {"IfcStyledItem", "IfcRepresentationItem", 2},
	"IFCREPRESENTATIONITEM":          {"IfcRepresentationItem", "", -1},
	"IFCPRESENTATIONLAYERASSIGNMENT": {"IfcPresentationLayerAssignment", "", 0},
	"IFCSURFACESTYLERENDERING":       {"IfcSurfaceStyleRendering", "IfcSurfaceStyleShading", -1},
	"IFCSURFACESTYLESHADING":         {"IfcSurfaceStyleShading", "", -1},

	// rooted hierarchy
	"IFCROOT":                 {"IfcRoot", "", 2},
	"IFCOBJECTDEFINITION":     {"IfcObjectDefinition", "IfcRoot", 2},
	"IFCOBJECT":               {"IfcObject", "IfcObjectDefinition", 2},
	"IFCPROJECT":              {"IfcProject", "IfcObjectDefinition", 2},
	"IFCPRODUCT":              {"IfcProduct", "IfcObject", 2},
	"IFCELEMENT":              {"IfcElement", "IfcProduct", 2},
	"IFCBUILDINGELEMENT":      {"IfcBuildingElement", "IfcElement", 2},
	"IFCWALL":                 {"IfcWall", "IfcBuildingElement", 2},
	"IFCWALLSTANDARDCASE":     {"IfcWallStandardCase", "IfcWall", 2},
	"IFCSLAB":                 {"IfcSlab", "IfcBuildingElement", 2},
	"IFCBEAM":                 {"IfcBeam", "IfcBuildingElement", 2},
	"IFCCOLUMN":               {"IfcColumn", "IfcBuildingElement", 2},
	"IFCDOOR":                 {"IfcDoor", "IfcBuildingElement", 2},
	"IFCWINDOW":               {"IfcWindow", "IfcBuildingElement", 2},
	"IFCROOF":                 {"IfcRoof", "IfcBuildingElement", 2},
	"IFCSTAIR":                {"IfcStair", "IfcBuildingElement", 2},
	"IFCRAILING":              {"IfcRailing", "IfcBuildingElement", 2},
	"IFCCOVERING":             {"IfcCovering", "IfcBuildingElement", 2},
	"IFCFOOTING":              {"IfcFooting", "IfcBuildingElement", 2},
	"IFCPLATE":                {"IfcPlate", "IfcBuildingElement", 2},
	"IFCMEMBER":               {"IfcMember", "IfcBuildingElement", 2},
	"IFCCURTAINWALL":          {"IfcCurtainWall", "IfcBuildingElement", 2},
	"IFCBUILDINGELEMENTPROXY": {"IfcBuildingElementProxy", "IfcBuildingElement", 2},
	"IFCFURNISHINGELEMENT":    {"IfcFurnishingElement", "IfcElement", 2},
	"IFCDISTRIBUTIONELEMENT":  {"IfcDistributionElement", "IfcElement", 2},
	"IFCFLOWTERMINAL":         {"IfcFlowTerminal", "IfcDistributionElement", 2},
	"IFCFLOWSEGMENT":          {"IfcFlowSegment", "IfcDistributionElement", 2},
	"IFCFLOWFITTING":          {"IfcFlowFitting", "IfcDistributionElement", 2},
	"IFCANNOTATION":           {"IfcAnnotation", "IfcProduct", 2},
	"IFCGRID":                 {"IfcGrid", "IfcProduct", 2},

	"IFCSPATIALSTRUCTUREELEMENT": {"IfcSpatialStructureElement", "IfcProduct", 2},
	"IFCSITE":                    {"IfcSite", "IfcSpatialStructureElement", 2},
	"IFCBUILDING":                {"IfcBuilding", "IfcSpatialStructureElement", 2},
	"IFCBUILDINGSTOREY":          {"IfcBuildingStorey", "IfcSpatialStructureElement", 2},
	"IFCSPACE":                   {"IfcSpace", "IfcSpatialStructureElement", 2},

	"IFCRELATIONSHIP":                     {"IfcRelationship", "IfcRoot", 2},
	"IFCRELASSOCIATES":                    {"IfcRelAssociates", "IfcRelationship", 2},
	"IFCRELASSOCIATESMATERIAL":            {"IfcRelAssociatesMaterial", "IfcRelAssociates", 2},
	"IFCRELDECOMPOSES":                    {"IfcRelDecomposes", "IfcRelationship", 2},
	"IFCRELAGGREGATES":                    {"IfcRelAggregates", "IfcRelDecomposes", 2},
	"IFCRELCONNECTS":                      {"IfcRelConnects", "IfcRelationship", 2},
	"IFCRELCONTAINEDINSPATIALSTRUCTURE":   {"IfcRelContainedInSpatialStructure", "IfcRelConnects", 2},
	"IFCRELDEFINES":                       {"IfcRelDefines", "IfcRelationship", 2},
	"IFCRELDEFINESBYPROPERTIES":           {"IfcRelDefinesByProperties", "IfcRelDefines", 2},
	"IFCRELDEFINESBYTYPE":                 {"IfcRelDefinesByType", "IfcRelDefines", 2},
	"IFCPROPERTYDEFINITION":               {"IfcPropertyDefinition", "IfcRoot", 2},
	"IFCPROPERTYSETDEFINITION":            {"IfcPropertySetDefinition", "IfcPropertyDefinition", 2},
	"IFCPROPERTYSET":                      {"IfcPropertySet", "IfcPropertySetDefinition", 2},
	"IFCTYPEOBJECT":                       {"IfcTypeObject", "IfcObjectDefinition", 2},
	"IFCTYPEPRODUCT":                      {"IfcTypeProduct", "IfcTypeObject", 2},
	"IFCELEMENTTYPE":                      {"IfcElementType", "IfcTypeProduct", 2},
	"IFCWALLTYPE":                         {"IfcWallType", "IfcElementType", 2},
	"IFCSLABTYPE":                         {"IfcSlabType", "IfcElementType", 2},
	"IFCDOORTYPE":                         {"IfcDoorType", "IfcElementType", 2},
	"IFCWINDOWTYPE":                       {"IfcWindowType", "IfcElementType", 2},
}

// lookupClass resolves a class name as spelled in a file.
func lookupClass(class string) (classInfo, bool) {
	info, ok := classTable[strings.ToUpper(class)]
	return info, ok
}

// canonicalClass returns the conventional IfcCamelCase spelling when
// known, otherwise the name as spelled in the file.
func canonicalClass(class string) string {
	if info, ok := lookupClass(class); ok {
		return info.canonical
	}
	return class
}

// isSubtypeOf walks the supertype chain. It answers false for classes
// outside the table.
func isSubtypeOf(class, super string) bool {
	for {
		if strings.EqualFold(class, super) {
			return true
		}
		info, ok := lookupClass(class)
		if !ok || info.parent == "" {
			return false
		}
		class = info.parent
	}
}

// nameIndex returns the position of the Name attribute for class, -1 if
// the class has none or is unknown.
func nameIndex(class string) int {
	if info, ok := lookupClass(class); ok {
		return info.nameIdx
	}
	return -1
}

// isRooted reports whether class descends from IfcRoot and therefore
// carries a GlobalId at attribute 0.
func isRooted(class string) bool {
	return isSubtypeOf(class, "IfcRoot")
}
