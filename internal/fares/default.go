package fares

// DefaultCurrency is the base currency of the built-in fare table
const DefaultCurrency = "INR"

// DefaultDays is the length of the built-in table: April 1 - May 31 2025
const DefaultDays = 61

// Default returns the built-in fare table for the April-May 2025 window.
// Index 0 of each row is April 1, index 30 is May 1.
func Default() *Table {
	table, err := NewTable(DefaultCurrency, DefaultDays, defaultRows)
	if err != nil {
		panic("built-in fare table is inconsistent: " + err.Error())
	}
	return table
}

var defaultRows = []Row{
	{
		Traveler: "Jonas",
		Outbound: []int{
			24740, 25560, 25011, 26671, 26940, 26820, 24210, 23741, 23040, 23400,
			25340, 24839, 23993, 22902, 23310, 23350, 25014, 27030, 23880, 23050,
			20625, 20480, 20780, 20450, 22530, 23120, 23136, 22070, 22580, 25713,
			23654, 24612, 25463, 25060, 23478, 23220, 22890, 22590, 24630, 25430,
			25092, 22700, 23290, 23512, 23716, 24930, 24815, 24970, 23470, 23740,
			22910, 22430, 24620, 24898, 24310, 21630, 21620, 21009, 21864, 24260,
			24757,
		},
		Return: []int{
			25379, 25134, 24540, 25611, 25634, 24892, 22800, 22760, 23305, 23788,
			25530, 26180, 26737, 25070, 25140, 24377, 26280, 27920, 25394, 25350,
			23189, 22798, 23130, 24000, 25069, 25183, 25714, 23460, 23100, 26324,
			24672, 26470, 26974, 26762, 24823, 25170, 25580, 25493, 26979, 26660,
			27120, 25290, 25698, 24910, 25553, 27834, 28130, 27534, 26574, 27371,
			27270, 27090, 27868, 28560, 29330, 28000, 28210, 27500, 27289, 29442,
			30223,
		},
	},
	{
		Traveler: "Priya",
		Outbound: []int{
			31215, 30940, 30570, 33250, 33825, 33570, 31000, 31460, 32040, 32480,
			34129, 33992, 34210, 31837, 32670, 33023, 35160, 37485, 35047, 34560,
			33077, 33026, 32700, 33200, 35060, 35015, 35250, 33479, 33020, 35679,
			32530, 34830, 33940, 33660, 30980, 30380, 31161, 30290, 31742, 32260,
			31790, 30252, 30549, 29845, 29361, 31800, 31130, 30880, 28530, 28813,
			28930, 28700, 30397, 30120, 29850, 28357, 28620, 28470, 28870, 30442,
			30840,
		},
		Return: []int{
			30140, 29930, 30370, 32903, 32977, 33032, 31430, 32127, 32150, 31490,
			34220, 34605, 34400, 31536, 31170, 32051, 35058, 37722, 34920, 34020,
			31270, 30802, 30595, 30784, 32608, 32998, 32781, 30400, 31010, 33557,
			31359, 33975, 34852, 35620, 34148, 33900, 34050, 33520, 34870, 35516,
			34960, 33363, 33360, 33920, 33660, 34960, 35073, 35147, 33880, 33305,
			32950, 33276, 34560, 34290, 34290, 32800, 32223, 32953, 33420, 34855,
			34036,
		},
	},
	{
		Traveler: "Arjun",
		Outbound: []int{
			18130, 18540, 18490, 18860, 18505, 19357, 17920, 17242, 18020, 18210,
			19260, 18620, 18399, 17459, 17940, 17883, 20220, 22260, 20500, 19616,
			17715, 18010, 17210, 16974, 18867, 18737, 18729, 17530, 17680, 19369,
			16453, 16860, 17481, 16660, 16310, 16510, 16570, 17290, 19240, 19720,
			19330, 17757, 17700, 17730, 17642, 18340, 18440, 18727, 17111, 17250,
			16890, 16850, 18251, 18178, 17360, 16180, 16070, 15540, 15753, 16180,
			15370,
		},
		Return: []int{
			20100, 20245, 20450, 21911, 21595, 21767, 19682, 19553, 19943, 20260,
			21640, 21370, 22121, 20520, 19770, 19020, 21330, 23503, 20835, 20063,
			19090, 18614, 17859, 17250, 17850, 17600, 16708, 14850, 14850, 17350,
			14850, 16250, 17000, 16250, 14850, 14850, 15270, 15060, 17204, 16950,
			16947, 15210, 14850, 15169, 14850, 16410, 16250, 16260, 15376, 14850,
			14850, 15455, 16250, 16560, 16789, 15750, 15110, 14850, 15329, 16600,
			17419,
		},
	},
}
