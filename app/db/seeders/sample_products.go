package seeders

type specTypeSeed struct {
	Name        string
	Unit        string
	Description string
}

type specValue struct {
	Name  string
	Value string
}

type productSeed struct {
	Title       string
	Price       string
	InitialText string
	Description string
	Order       uint
	Specs       []specValue
}

const SampleProductPrefix = "Rainy FL"

var sampleSpecificationTypes = []specTypeSeed{
	{"Área máxima de la cubierta", "m²", "Área máxima que puede cubrir el filtro"},
	{"Máxima Intensidad de la lluvia", "mm/h", "Intensidad máxima de lluvia que puede manejar"},
	{"Tipo de filtro", "", "Tipo y diseño del filtro"},
	{"Principio de trabajo", "", "Principio de funcionamiento del filtro"},
	{"Presión operacional", "cm de columna de agua", "Presión necesaria para el funcionamiento"},
	{"Caudal máximo", "L/min", "Caudal máximo que puede procesar"},
	{"Elemento filtrante", "", "Descripción del elemento filtrante"},
	{"Tamaño de la malla filtrante", "micras", "Tamaño de la malla del filtro"},
	{"Tamaño de la entrada", "mm", "Diámetro de la entrada de agua"},
	{"Tamaño salida de agua limpia", "mm", "Diámetro de la salida de agua filtrada"},
	{"Tamaño salida de desagüe", "mm", "Diámetro de la salida de desagüe"},
	{"Material cuerpo del filtro", "", "Material del cuerpo principal del filtro"},
	{"Eficiencia del filtro", "%", "Porcentaje de eficiencia del filtro"},
	{"Fuente de poder", "", "Fuente de energía requerida"},
	{"Limpieza", "", "Método de limpieza del filtro"},
}

// Shared by every model of the series.
var commonSpecs = []specValue{
	{"Máxima Intensidad de la lluvia", "75"},
	{"Tipo de filtro", "Abierto por un extremo, con diseño antiobstrucción"},
	{"Principio de trabajo", "Fuerza Cohesiva y Centrífuga"},
	{"Presión operacional", "30,48 cm de columna de agua (0,060 kg/cm2)"},
	{"Elemento filtrante", "Malla de superficies múltiples en acero inoxidable SS-304 - grado alimenticio"},
	{"Tamaño de la malla filtrante", "250 micras (0,25 mm)"},
	{"Material cuerpo del filtro", "Polietileno de alta densidad (HDPE), estabilizado contra rayos ultravioleta (UV), resistente a la corrosión y a la intemperie."},
	{"Eficiencia del filtro", "Por encima del 90%"},
	{"Fuente de poder", "Gravedad"},
	{"Limpieza", "Autolimpieza mediante descarga automática"},
}

func sizedSpecs(area, flow, inlet, cleanOutlet, drainOutlet string) []specValue {
	return []specValue{
		{"Área máxima de la cubierta", area},
		{"Caudal máximo", flow},
		{"Tamaño de la entrada", inlet},
		{"Tamaño salida de agua limpia", cleanOutlet},
		{"Tamaño salida de desagüe", drainOutlet},
	}
}

var sampleProducts = []productSeed{
	{
		Title:       "Rainy FL 80",
		Price:       "450000.00",
		InitialText: "Filtro de lluvia ideal para techos de hasta 120 m²",
		Description: "El Rainy FL 80 es perfecto para casas medianas y pequeñas. Su diseño compacto permite una instalación sencilla mientras mantiene la máxima eficiencia en la filtración de agua de lluvia.",
		Order:       1,
		Specs:       sizedSpecs("120", "120", "90", "63", "90"),
	},
	{
		Title:       "Rainy FL 150",
		Price:       "550000.00",
		InitialText: "Filtro de lluvia para techos de hasta 180 m²",
		Description: "El Rainy FL 150 ofrece mayor capacidad de filtración para casas grandes y pequeñas edificaciones comerciales. Equilibrio perfecto entre eficiencia y capacidad.",
		Order:       2,
		Specs:       sizedSpecs("180", "180", "90", "75", "90"),
	},
	{
		Title:       "Rainy FL 250",
		Price:       "750000.00",
		InitialText: "Filtro de lluvia de alta capacidad para techos de hasta 250 m²",
		Description: "El Rainy FL 250 está diseñado para edificaciones comerciales y residenciales de gran tamaño. Máxima eficiencia para grandes volúmenes de agua.",
		Order:       3,
		Specs:       sizedSpecs("250", "250", "110", "90", "90"),
	},
	{
		Title:       "Rainy FL 350",
		Price:       "950000.00",
		InitialText: "Filtro de lluvia industrial para techos de hasta 375 m²",
		Description: "El Rainy FL 350 es la solución ideal para aplicaciones industriales y comerciales de gran escala. Diseñado para manejar grandes volúmenes con máxima eficiencia.",
		Order:       4,
		Specs:       sizedSpecs("375", "360", "110", "110", "90"),
	},
	{
		Title:       "Rainy FL 500",
		Price:       "1200000.00",
		InitialText: "Filtro de lluvia de máxima capacidad para techos de hasta 500 m²",
		Description: "El Rainy FL 500 representa la máxima capacidad de nuestra línea de filtros. Ideal para grandes complejos industriales y comerciales que requieren el más alto rendimiento.",
		Order:       5,
		Specs:       sizedSpecs("500", "480", "110", "110", "110"),
	},
}
