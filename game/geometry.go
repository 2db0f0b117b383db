package game

// Fixed board topology: 19 hexagonal tiles laid out in 3-4-5-4-3 rows and 54
// settlement vertices. The tables below never change between boards; only the
// resource/number assignment on top of them is random.

const (
	NumTiles    = 19
	NumVertices = 54
)

// tileRows gives the (row, col) position of each tile id 0-18.
var tileRows = [NumTiles][2]int{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2}, {1, 3},
	{2, 0}, {2, 1}, {2, 2}, {2, 3}, {2, 4},
	{3, 0}, {3, 1}, {3, 2}, {3, 3},
	{4, 0}, {4, 1}, {4, 2},
}

// vertexTiles maps each vertex to the 1-3 tiles it touches.
var vertexTiles = [NumVertices][]int{
	0:  {0, 1},
	1:  {0, 1, 4},
	2:  {0, 3, 4},
	3:  {0, 3},
	4:  {0},
	5:  {0},
	6:  {1, 2},
	7:  {1, 2, 5},
	8:  {1, 4, 5},
	9:  {1},
	10: {2},
	11: {2, 6},
	12: {2, 5, 6},
	13: {2},
	14: {3, 4, 8},
	15: {3, 7, 8},
	16: {3, 7},
	17: {3},
	18: {4, 5, 9},
	19: {4, 8, 9},
	20: {5, 6, 10},
	21: {5, 9, 10},
	22: {6},
	23: {6, 11},
	24: {6, 10, 11},
	25: {7, 8, 12},
	26: {7, 12},
	27: {7},
	28: {7},
	29: {8, 9, 13},
	30: {8, 12, 13},
	31: {9, 10, 14},
	32: {9, 13, 14},
	33: {10, 11, 15},
	34: {10, 14, 15},
	35: {11},
	36: {11},
	37: {11, 15},
	38: {12, 13, 16},
	39: {12, 16},
	40: {12},
	41: {13, 14, 17},
	42: {13, 16, 17},
	43: {14, 15, 18},
	44: {14, 17, 18},
	45: {15},
	46: {15, 18},
	47: {16, 17},
	48: {16},
	49: {16},
	50: {17, 18},
	51: {17},
	52: {18},
	53: {18},
}

// vertexNeighbors maps each vertex to its 2-3 adjacent vertices. Two
// settlements may never sit on adjacent vertices (the distance rule).
var vertexNeighbors = [NumVertices][]int{
	0:  {1, 5, 9},
	1:  {0, 2, 8},
	2:  {1, 3, 14},
	3:  {2, 4, 17},
	4:  {3, 5},
	5:  {0, 4},
	6:  {7, 9, 13},
	7:  {6, 8, 12},
	8:  {1, 7, 18},
	9:  {0, 6},
	10: {11, 13},
	11: {10, 12, 22},
	12: {7, 11, 20},
	13: {6, 10},
	14: {2, 15, 19},
	15: {14, 16, 25},
	16: {15, 17, 28},
	17: {3, 16},
	18: {8, 19, 21},
	19: {14, 18, 29},
	20: {12, 21, 24},
	21: {18, 20, 31},
	22: {11, 23},
	23: {22, 24, 35},
	24: {20, 23, 33},
	25: {15, 26, 30},
	26: {25, 27, 40},
	27: {26, 28},
	28: {16, 27},
	29: {19, 30, 32},
	30: {25, 29, 38},
	31: {21, 32, 34},
	32: {29, 31, 41},
	33: {24, 34, 37},
	34: {31, 33, 43},
	35: {23, 36},
	36: {35, 37},
	37: {33, 36, 45},
	38: {30, 39, 42},
	39: {38, 40, 49},
	40: {26, 39},
	41: {32, 42, 44},
	42: {38, 41, 47},
	43: {34, 44, 46},
	44: {41, 43, 50},
	45: {37, 46},
	46: {43, 45, 52},
	47: {42, 48, 51},
	48: {47, 49},
	49: {39, 48},
	50: {44, 51, 53},
	51: {47, 50},
	52: {46, 53},
	53: {50, 52},
}

// VertexTiles returns the tile ids touching the given vertex.
func VertexTiles(vertex int) []int {
	return vertexTiles[vertex]
}

// VertexNeighbors returns the vertices adjacent to the given vertex.
func VertexNeighbors(vertex int) []int {
	return vertexNeighbors[vertex]
}
