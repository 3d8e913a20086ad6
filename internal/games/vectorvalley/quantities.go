package vectorvalley

// Quantity is a physical quantity to classify in the sorting stage.
type Quantity struct {
	Text   string
	Vector bool
	Hint   string
}

var quantities = []Quantity{
	{"Mass (5 kg)", false, "Only magnitude, no direction."},
	{"Velocity (50 km/h North)", true, "Has both speed and direction."},
	{"Temperature (30°C)", false, "Direction doesn't matter for heat."},
	{"Force (10 N Down)", true, "Force always acts in a direction."},
	{"Distance (10 meters)", false, "Just length, no direction specified."},
	{"Displacement (10 m East)", true, "The length and direction from start."},
	{"Time (10 seconds)", false, "Time has no direction in space."},
	{"Acceleration (9.8 m/s² Down)", true, "Change in velocity involves direction."},
	{"Speed (60 km/h)", false, "Just a rate, no direction specified."},
	{"Pressure (101 kPa)", false, "Acts in all directions equally at a point."},
	{"Momentum (20 kg·m/s Right)", true, "Product of mass and velocity."},
	{"Energy (500 Joules)", false, "Capacity to do work, no direction."},
	{"Weight (600 N Down)", true, "Gravity pulls in a specific direction."},
	{"Volume (2 Liters)", false, "Amount of space occupied."},
	{"Field Strength (5 N/C North)", true, "An electric field points somewhere."},
	{"Power (150 Watts)", false, "Rate of energy transfer."},
	{"Density (1000 kg/m³)", false, "Mass per unit volume."},
	{"Torque (10 N·m Clockwise)", true, "Rotational force has an axis and direction."},
	{"Work (100 Joules)", false, "Dot product of force and displacement."},
	{"Area (25 m²)", false, "Magnitude of a surface."},
	{"Impulse (5 N·s Up)", true, "Change in momentum has direction."},
	{"Electric Current (5 A)", false, "Charge flow per unit time."},
}

// Point is a grid cell; Y grows upward.
type Point struct {
	X, Y int
}

// Mission is one grid level of the navigation stage.
type Mission struct {
	Start  Point
	Target Point
	Walls  []Point
}

var missions = []Mission{
	{Start: Point{1, 1}, Target: Point{8, 8}},
	{Start: Point{1, 1}, Target: Point{8, 2}, Walls: []Point{{4, 1}, {4, 2}, {4, 3}}},
}
